package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/viralscript-backend/internal/data/repos/submission"
	"github.com/yungbote/viralscript-backend/internal/modules/ideas"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	"github.com/yungbote/viralscript-backend/internal/modules/prefetch"
	"github.com/yungbote/viralscript-backend/internal/modules/urlnorm"
	"github.com/yungbote/viralscript-backend/internal/observability"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/ctxutil"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

const (
	GenerationModeBatch   = "batch"
	GenerationModePerIdea = "per_idea"

	StagePersonaMatch   = "persona_match"
	StageCompanySummary = "company_summary"
	StageGeneration     = "generation"
	StagePersistence    = "persistence"
	StageTotal          = "total"
)

type UserInfo struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	WebsiteURL  string `json:"website_url"`
	Role        string `json:"role,omitempty"`
}

type SubmitInput struct {
	User    UserInfo         `json:"user_info"`
	Answers []persona.Answer `json:"answers"`
}

// Result is everything one pipeline run produced. Timing is in seconds per
// stage.
type Result struct {
	PersonaName    string             `json:"influencer"`
	Persona        persona.Profile    `json:"persona"`
	Industry       string             `json:"industry"`
	CompanySummary []string           `json:"company_summary"`
	Ideas          []ideas.Idea       `json:"ideas"`
	Scripts        []ideas.Script     `json:"scripts"`
	Timing         map[string]float64 `json:"timing"`
	Saved          *submission.Saved  `json:"saved,omitempty"`
}

type CompanySummarizer interface {
	Summarize(ctx context.Context, companyName, websiteURL string) []string
}

type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, req ideas.Request) []ideas.Idea
	GenerateScripts(ctx context.Context, list []ideas.Idea, personaStyle string, summary []string) []ideas.Script
	GenerateAll(ctx context.Context, req ideas.Request) ([]ideas.Idea, []ideas.Script)
}

type SubmissionConfig struct {
	MinAnswers int
	Mode       string
	Count      int
}

type SubmissionService interface {
	Prefetch(ctx context.Context, companyName, websiteURL string) (key string, started bool, err error)
	Submit(ctx context.Context, in SubmitInput) (*Result, error)
}

type submissionService struct {
	log        *logger.Logger
	matcher    *persona.Matcher
	summarizer CompanySummarizer
	generator  IdeaGenerator
	cache      *prefetch.Cache
	store      submission.SubmissionStore

	minAnswers int
	mode       string
	count      int
}

// NewSubmissionService wires the pipeline. store may be nil, in which case
// results are returned without being persisted.
func NewSubmissionService(
	log *logger.Logger,
	matcher *persona.Matcher,
	summarizer CompanySummarizer,
	generator IdeaGenerator,
	cache *prefetch.Cache,
	store submission.SubmissionStore,
	cfg SubmissionConfig,
) SubmissionService {
	serviceLog := log.With("service", "SubmissionService")
	if cfg.MinAnswers <= 0 {
		cfg.MinAnswers = matcher.Catalog().MinAnswers
	}
	switch cfg.Mode {
	case GenerationModeBatch, GenerationModePerIdea:
	default:
		if cfg.Mode != "" {
			serviceLog.Warn("Unknown generation mode, using batch", "mode", cfg.Mode)
		}
		cfg.Mode = GenerationModeBatch
	}
	if cfg.Count <= 0 {
		cfg.Count = ideas.DefaultCount
	}
	return &submissionService{
		log:        serviceLog,
		matcher:    matcher,
		summarizer: summarizer,
		generator:  generator,
		cache:      cache,
		store:      store,
		minAnswers: cfg.MinAnswers,
		mode:       cfg.Mode,
		count:      cfg.Count,
	}
}

func (s *submissionService) Prefetch(ctx context.Context, companyName, websiteURL string) (string, bool, error) {
	companyName = strings.TrimSpace(companyName)
	websiteURL = strings.TrimSpace(websiteURL)
	if err := validateCompany(companyName, websiteURL); err != nil {
		return "", false, err
	}
	if s.cache == nil {
		return "", false, errors.New("prefetch cache not configured")
	}
	key := prefetch.Key(companyName, urlnorm.Normalize(websiteURL))
	_, started := s.cache.GetOrStart(key, func(cctx context.Context) []string {
		return s.summarizer.Summarize(cctx, companyName, websiteURL)
	})
	s.log.Info("Prefetch requested", append(ctxutil.LogFields(ctx), "key", key, "started", started)...)
	return key, started, nil
}

func (s *submissionService) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	user := in.User
	user.Name = strings.TrimSpace(user.Name)
	user.CompanyName = strings.TrimSpace(user.CompanyName)
	user.WebsiteURL = strings.TrimSpace(user.WebsiteURL)
	user.Role = strings.TrimSpace(user.Role)

	if err := validateCompany(user.CompanyName, user.WebsiteURL); err != nil {
		return nil, err
	}
	if len(in.Answers) < s.minAnswers {
		return nil, &pkgerrors.ValidationError{
			Field:  "answers",
			Reason: "must contain at least " + strconv.Itoa(s.minAnswers) + " answers",
		}
	}

	ctx, span := observability.StartSpan(ctx, "submission.submit",
		attribute.String("company", user.CompanyName),
		attribute.String("generation_mode", s.mode),
	)
	defer span.End()

	logFields := ctxutil.LogFields(ctx)
	totalStart := time.Now()
	timing := map[string]float64{}
	res := &Result{Timing: timing}

	var personaSecs, summarySecs float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, end := s.stage(gctx, StagePersonaMatch)
		res.PersonaName, res.Persona = s.matcher.Match(in.Answers)
		res.Industry = s.matcher.Industry(in.Answers)
		personaSecs = end()
		return nil
	})
	g.Go(func() error {
		sctx, end := s.stage(gctx, StageCompanySummary)
		summary, err := s.summary(sctx, user.CompanyName, user.WebsiteURL)
		summarySecs = end()
		if err != nil {
			return err
		}
		res.CompanySummary = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timing[StagePersonaMatch] = personaSecs
	timing[StageCompanySummary] = summarySecs
	s.log.Info("Persona matched", append(logFields, "influencer", res.PersonaName, "industry", res.Industry)...)

	genCtx, end := s.stage(ctx, StageGeneration)
	res.Ideas, res.Scripts = s.generate(genCtx, res)
	timing[StageGeneration] = end()

	if s.store != nil {
		pctx, end := s.stage(ctx, StagePersistence)
		saved, err := s.store.Save(pctx, toRecord(user, in.Answers, res))
		timing[StagePersistence] = end()
		if err != nil {
			return nil, err
		}
		res.Saved = saved
	}

	timing[StageTotal] = seconds(time.Since(totalStart))
	observability.Current().ObserveStage(StageTotal, time.Since(totalStart))
	s.log.Info("Submission processed", append(logFields,
		"influencer", res.PersonaName,
		"ideas", len(res.Ideas),
		"scripts", len(res.Scripts),
		"total_seconds", timing[StageTotal],
	)...)
	return res, nil
}

// summary prefers a live prefetch for the same company and URL.
func (s *submissionService) summary(ctx context.Context, companyName, websiteURL string) ([]string, error) {
	if s.cache != nil {
		key := prefetch.Key(companyName, urlnorm.Normalize(websiteURL))
		if h, ok := s.cache.Take(key); ok {
			s.log.Debug("Using prefetched summary", "key", key)
			out, err := h.Wait(ctx)
			if err != nil {
				h.Cancel()
				return nil, err
			}
			return out, nil
		}
	}
	return s.summarizer.Summarize(ctx, companyName, websiteURL), nil
}

func (s *submissionService) generate(ctx context.Context, res *Result) ([]ideas.Idea, []ideas.Script) {
	req := ideas.Request{
		PersonaStyle:   res.Persona.StyleLine(),
		Industry:       res.Industry,
		CompanySummary: res.CompanySummary,
		Count:          s.count,
	}
	if s.mode == GenerationModeBatch {
		list, scripts := s.generator.GenerateAll(ctx, req)
		if len(list) > 0 {
			return list, scripts
		}
		s.log.Warn("Batch generation returned no sets, using per-idea path")
		observability.Current().IncFallback("batch", "no_sets")
	}
	list := s.generator.GenerateIdeas(ctx, req)
	return list, s.generator.GenerateScripts(ctx, list, req.PersonaStyle, req.CompanySummary)
}

// stage opens a span for one pipeline stage. The returned func ends it,
// records the duration and returns it in seconds.
func (s *submissionService) stage(ctx context.Context, name string) (context.Context, func() float64) {
	ctx, span := observability.StartSpan(ctx, "submission."+name)
	start := time.Now()
	s.log.Debug("Starting stage", "stage", name)
	return ctx, func() float64 {
		d := time.Since(start)
		span.End()
		observability.Current().ObserveStage(name, d)
		secs := seconds(d)
		s.log.Info("Stage finished", "stage", name, "seconds", secs)
		return secs
	}
}

func validateCompany(companyName, websiteURL string) error {
	if companyName == "" {
		return &pkgerrors.ValidationError{Field: "company_name", Reason: "is required"}
	}
	if websiteURL == "" {
		return &pkgerrors.ValidationError{Field: "website_url", Reason: "is required"}
	}
	return nil
}

func toRecord(user UserInfo, answers []persona.Answer, res *Result) submission.Record {
	rec := submission.Record{
		Name:              user.Name,
		CompanyName:       user.CompanyName,
		WebsiteURL:        user.WebsiteURL,
		Role:              user.Role,
		Answers:           answers,
		MatchedInfluencer: res.PersonaName,
		InfluencerStyle:   res.Persona.Style,
		Industry:          res.Industry,
		Summary:           res.CompanySummary,
	}
	for i, idea := range res.Ideas {
		ir := submission.IdeaRecord{Title: idea.Title, Concept: idea.Concept, Appeal: idea.Appeal}
		if i < len(res.Scripts) {
			sc := res.Scripts[i]
			ir.Script = &submission.ScriptRecord{
				Content:       sc.Content,
				DeliveryNotes: sc.DeliveryNotes,
				EditingNotes:  sc.EditingNotes,
			}
		}
		rec.Ideas = append(rec.Ideas, ir)
	}
	return rec
}

func seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
