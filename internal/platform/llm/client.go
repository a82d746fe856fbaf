package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/viralscript-backend/internal/platform/envutil"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// ErrNotConfigured is returned by New when no credentials are present.
var ErrNotConfigured = errors.New("generation backend not configured")

// Options are per-call knobs. Op labels logs and metrics.
type Options struct {
	Op          string
	Temperature float64
	MaxTokens   int
}

// Client is a single chat-style text completion: one prompt in, full text out.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Provider() string
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f ClientFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

func (f ClientFunc) Provider() string { return "func" }

type Config struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxRetries      int
	BreakerFailures int
	BreakerCooldown time.Duration
}

// ConfigFromEnv reads LLM_* settings. DEEPSEEK_API_KEY and OPENAI_API_KEY are
// both accepted for the openai-compatible provider.
func ConfigFromEnv(log *logger.Logger) Config {
	cfg := Config{
		Provider:        strings.ToLower(envutil.String("LLM_PROVIDER", "openai", log)),
		Timeout:         envutil.Seconds("LLM_TIMEOUT_SECONDS", 45*time.Second, log),
		MaxRetries:      envutil.Int("LLM_MAX_RETRIES", 2, log),
		BreakerFailures: envutil.Int("LLM_BREAKER_FAILURES", 5, log),
		BreakerCooldown: envutil.Seconds("LLM_BREAKER_COOLDOWN_SECONDS", 30*time.Second, log),
	}
	switch cfg.Provider {
	case "anthropic":
		cfg.APIKey = envutil.String("ANTHROPIC_API_KEY", "", nil)
		cfg.Model = envutil.String("ANTHROPIC_MODEL", "claude-3-5-haiku-latest", log)
		cfg.BaseURL = envutil.String("LLM_BASE_URL", "", log)
	default:
		cfg.Provider = "openai"
		cfg.APIKey = envutil.String("DEEPSEEK_API_KEY", envutil.String("OPENAI_API_KEY", "", nil), nil)
		cfg.Model = envutil.String("LLM_MODEL", "deepseek-chat", log)
		cfg.BaseURL = envutil.String("LLM_BASE_URL", "https://api.deepseek.com", log)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return cfg
}

// New builds the configured provider wrapped with timeout, retry and circuit
// breaking. The returned client is safe for concurrent use and meant to be
// shared across the app.
func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	var inner Client
	switch cfg.Provider {
	case "anthropic":
		inner = newAnthropicClient(cfg)
	case "openai", "":
		inner = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	log.Info("generation backend configured", "provider", inner.Provider(), "model", cfg.Model, "base_url", cfg.BaseURL)
	return NewResilient(log, inner, cfg), nil
}
