package app

import (
	"time"

	"github.com/yungbote/viralscript-backend/internal/data/db"
	"github.com/yungbote/viralscript-backend/internal/modules/ideas"
	"github.com/yungbote/viralscript-backend/internal/modules/prefetch"
	"github.com/yungbote/viralscript-backend/internal/modules/summary"
	"github.com/yungbote/viralscript-backend/internal/platform/envutil"
	"github.com/yungbote/viralscript-backend/internal/platform/llm"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
	"github.com/yungbote/viralscript-backend/internal/platform/webfetch"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	CORSOrigins []string

	GenerationMode        string
	GenerationCount       int
	GenerationConcurrency int
	BatchMaxTokens        int
	SummaryMaxChars       int
	MinAnswers            int

	PrefetchTTL           time.Duration
	PrefetchSweepInterval time.Duration

	DB    db.Config
	LLM   llm.Config
	Fetch webfetch.Config
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.String("PORT", "8080", log),
		ServiceName: envutil.String("SERVICE_NAME", "viralscript", log),
		Environment: envutil.String("APP_ENV", "development", log),
		CORSOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil, log),

		GenerationMode:        envutil.String("GENERATION_MODE", "batch", log),
		GenerationCount:       envutil.Int("GENERATION_COUNT", ideas.DefaultCount, log),
		GenerationConcurrency: envutil.Int("GENERATION_CONCURRENCY", ideas.DefaultConcurrency, log),
		BatchMaxTokens:        envutil.Int("LLM_MAX_TOKENS_BATCH", ideas.DefaultBatchMaxTokens, log),
		SummaryMaxChars:       envutil.Int("SUMMARY_MAX_CHARS", summary.DefaultMaxChars, log),
		// 0 defers to the catalog.
		MinAnswers: envutil.Int("QUIZ_MIN_ANSWERS", 0, log),

		PrefetchTTL:           envutil.Seconds("PREFETCH_TTL_SECONDS", prefetch.DefaultTTL, log),
		PrefetchSweepInterval: envutil.Seconds("PREFETCH_SWEEP_INTERVAL_SECONDS", prefetch.DefaultSweepInterval, log),

		DB:    db.ConfigFromEnv(log),
		LLM:   llm.ConfigFromEnv(log),
		Fetch: webfetch.ConfigFromEnv(log),
	}
}
