package ideas

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/viralscript-backend/internal/observability"
	"github.com/yungbote/viralscript-backend/internal/platform/ctxutil"
	"github.com/yungbote/viralscript-backend/internal/platform/llm"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

const (
	DefaultConcurrency    = 5
	DefaultBatchMaxTokens = 4000
)

type Config struct {
	Concurrency    int
	BatchMaxTokens int
}

// Generator drives the generation backend for ideas and scripts and falls
// back to mock content whenever the backend cannot be used.
type Generator struct {
	log            *logger.Logger
	llm            llm.Client
	concurrency    int
	batchMaxTokens int
}

// New builds a Generator. A nil client means generation is not configured.
func New(log *logger.Logger, client llm.Client, cfg Config) *Generator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.BatchMaxTokens <= 0 {
		cfg.BatchMaxTokens = DefaultBatchMaxTokens
	}
	return &Generator{
		log:            log.With("service", "IdeaGenerator"),
		llm:            client,
		concurrency:    cfg.Concurrency,
		batchMaxTokens: cfg.BatchMaxTokens,
	}
}

// GenerateIdeas is the single-shot path. Results are capped at the requested
// count and padded with mock ideas up to three; a failed call or unusable
// output yields the mock ideas.
func (g *Generator) GenerateIdeas(ctx context.Context, req Request) []Idea {
	count := req.count()
	floor := MinIdeas
	if count < floor {
		floor = count
	}
	mocks := MockIdeas(req.Industry)[:floor]

	if g.llm == nil {
		g.fallback(ctx, "ideas", "not_configured", nil)
		return mocks
	}

	start := time.Now()
	out, err := g.llm.Generate(ctx, ideasPrompt(req, count), llm.Options{
		Op:          "video_ideas",
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	if err != nil {
		g.fallback(ctx, "ideas", "generation", err)
		return mocks
	}

	parsed := ParseIdeas(out)
	if len(parsed) == 0 {
		g.fallback(ctx, "ideas", "unparsable", nil)
		return mocks
	}
	if len(parsed) > count {
		parsed = parsed[:count]
	}
	if len(parsed) < floor {
		g.log.Warn("padding video ideas with mock ideas",
			append(ctxutil.LogFields(ctx), "parsed", len(parsed), "floor", floor)...,
		)
		parsed = append(parsed, mocks[len(parsed):]...)
	}
	g.log.Info("video ideas generated",
		append(ctxutil.LogFields(ctx), "count", len(parsed), "duration_ms", time.Since(start).Milliseconds())...,
	)
	return parsed
}

// GenerateScript writes one script for idea. Failures yield the mock script.
func (g *Generator) GenerateScript(ctx context.Context, idea Idea, personaStyle string, summary []string) Script {
	if g.llm == nil {
		g.fallback(ctx, "script", "not_configured", nil)
		return MockScript(idea)
	}
	out, err := g.llm.Generate(ctx, scriptPrompt(idea, personaStyle, summary), llm.Options{
		Op:          "video_script",
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		g.fallback(ctx, "script", "generation", err)
		return MockScript(idea)
	}
	s := ParseScript(out)
	if strings.TrimSpace(s.Content) == "" {
		g.fallback(ctx, "script", "unparsable", nil)
		return MockScript(idea)
	}
	s.Title = idea.Title
	return s
}

// GenerateScripts fans out one call per idea over the shared client. The
// result is index-aligned with ideas.
func (g *Generator) GenerateScripts(ctx context.Context, ideas []Idea, personaStyle string, summary []string) []Script {
	out := make([]Script, len(ideas))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i := range ideas {
		i := i
		eg.Go(func() error {
			out[i] = g.GenerateScript(ectx, ideas[i], personaStyle, summary)
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

// GenerateAll is the batch path: one call for count idea+script sets.
// Results are capped at count and never padded; failure yields empty slices.
func (g *Generator) GenerateAll(ctx context.Context, req Request) ([]Idea, []Script) {
	if g.llm == nil {
		g.fallback(ctx, "batch", "not_configured", nil)
		return []Idea{}, []Script{}
	}
	count := req.count()

	start := time.Now()
	out, err := g.llm.Generate(ctx, batchPrompt(req, count), llm.Options{
		Op:          "video_batch",
		Temperature: 0.8,
		MaxTokens:   g.batchMaxTokens,
	})
	if err != nil {
		g.fallback(ctx, "batch", "generation", err)
		return []Idea{}, []Script{}
	}

	sets := parseSets(out)
	if len(sets) > count {
		sets = sets[:count]
	}
	ideas := make([]Idea, 0, len(sets))
	scripts := make([]Script, 0, len(sets))
	for _, s := range sets {
		ideas = append(ideas, s.Idea)
		scripts = append(scripts, s.Script)
	}
	if len(sets) == 0 {
		g.fallback(ctx, "batch", "unparsable", nil)
		return ideas, scripts
	}
	g.log.Info("video sets generated",
		append(ctxutil.LogFields(ctx), "requested", count, "count", len(sets), "duration_ms", time.Since(start).Milliseconds())...,
	)
	return ideas, scripts
}

func (g *Generator) fallback(ctx context.Context, stage, reason string, err error) {
	kv := append(ctxutil.LogFields(ctx), "stage", stage, "reason", reason)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	g.log.Warn("generation fallback", kv...)
	observability.Current().IncFallback(stage, reason)
}
