package app

import (
	"context"
	"fmt"

	"github.com/yungbote/viralscript-backend/internal/modules/ideas"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	"github.com/yungbote/viralscript-backend/internal/modules/prefetch"
	"github.com/yungbote/viralscript-backend/internal/modules/summary"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
	"github.com/yungbote/viralscript-backend/internal/services"
)

type Services struct {
	Quiz       services.QuizService
	Submission services.SubmissionService
	Result     services.ResultService

	Prefetch *prefetch.Cache
}

// wireServices builds the pipeline. base scopes prefetch computations; it
// is cancelled when the app closes.
func wireServices(base context.Context, log *logger.Logger, cfg Config, clients Clients, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := persona.LoadCatalog(log)
	if err != nil {
		return Services{}, fmt.Errorf("load persona catalog: %w", err)
	}
	matcher := persona.NewMatcher(catalog)

	summarizer := summary.New(log, clients.Fetcher, clients.LLM, cfg.SummaryMaxChars)
	generator := ideas.New(log, clients.LLM, ideas.Config{
		Concurrency:    cfg.GenerationConcurrency,
		BatchMaxTokens: cfg.BatchMaxTokens,
	})
	cache := prefetch.NewCache(base, log, cfg.PrefetchTTL)

	out := Services{
		Quiz: services.NewQuizService(log, catalog),
		Submission: services.NewSubmissionService(log, matcher, summarizer, generator, cache, repos.Submission, services.SubmissionConfig{
			MinAnswers: cfg.MinAnswers,
			Mode:       cfg.GenerationMode,
			Count:      cfg.GenerationCount,
		}),
		Prefetch: cache,
	}
	if repos.ScriptResult != nil {
		out.Result = services.NewResultService(log, services.ResultRepos{
			Results:     repos.ScriptResult,
			Users:       repos.User,
			QuizResults: repos.QuizResult,
			CompanyData: repos.CompanyData,
		}, catalog)
	}
	return out, nil
}
