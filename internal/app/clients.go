package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/viralscript-backend/internal/platform/llm"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
	"github.com/yungbote/viralscript-backend/internal/platform/webfetch"
)

type Clients struct {
	// LLM is nil when no API key is configured; every generation step then
	// serves its fallback.
	LLM     llm.Client
	Fetcher webfetch.Fetcher
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	client, err := llm.New(log, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warn("No generation API key set, serving fallback content", "provider", cfg.LLM.Provider)
		client = nil
	case err != nil:
		return Clients{}, fmt.Errorf("init llm client: %w", err)
	}

	return Clients{
		LLM:     client,
		Fetcher: webfetch.NewHTTPFetcher(log, cfg.Fetch),
	}, nil
}
