package summary

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yungbote/viralscript-backend/internal/modules/urlnorm"
	"github.com/yungbote/viralscript-backend/internal/observability"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/ctxutil"
	"github.com/yungbote/viralscript-backend/internal/platform/llm"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
	"github.com/yungbote/viralscript-backend/internal/platform/webfetch"
)

const (
	DefaultMaxChars = 2000
	MaxLines        = 7
)

const (
	ReasonNotConfigured  = "Generation backend is not configured"
	ReasonFetchTimeout   = "Website took too long to respond"
	ReasonFetchStatus    = "Website data could not be fetched"
	ReasonFetchFailed    = "Website could not be accessed"
	ReasonEmptyContent   = "Website content could not be parsed"
	ReasonGenerateFailed = "Could not generate detailed summary"
	ReasonNoLines        = "Detailed information not available"
)

// Summarizer turns a company website into a few factual statements. It never
// fails; every broken step degrades to Placeholder.
type Summarizer struct {
	log      *logger.Logger
	fetcher  webfetch.Fetcher
	llm      llm.Client
	maxChars int
}

// New builds a Summarizer. A nil client means generation is not configured.
func New(log *logger.Logger, fetcher webfetch.Fetcher, client llm.Client, maxChars int) *Summarizer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Summarizer{
		log:      log.With("service", "CompanySummarizer"),
		fetcher:  fetcher,
		llm:      client,
		maxChars: maxChars,
	}
}

// Placeholder is the fixed three line summary used on any failure.
func Placeholder(companyName, reason string) []string {
	return []string{
		fmt.Sprintf("%s is a technology company", companyName),
		reason,
		"Using basic company information",
	}
}

func (s *Summarizer) Summarize(ctx context.Context, companyName, websiteURL string) []string {
	if s.llm == nil {
		return s.fallback(ctx, companyName, ReasonNotConfigured, "not_configured", nil)
	}

	target := urlnorm.Normalize(websiteURL)
	_, body, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return s.fallback(ctx, companyName, fetchReason(err), "fetch", err)
	}

	text := webfetch.ExtractText(body)
	if text == "" {
		return s.fallback(ctx, companyName, ReasonEmptyContent, "empty_content", nil)
	}
	text = webfetch.Truncate(text, s.maxChars)

	start := time.Now()
	out, err := s.llm.Generate(ctx, buildPrompt(companyName, text), llm.Options{
		Op:          "company_summary",
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return s.fallback(ctx, companyName, ReasonGenerateFailed, "generation", err)
	}

	lines := ParseLines(out)
	if len(lines) == 0 {
		return s.fallback(ctx, companyName, ReasonNoLines, "no_lines", nil)
	}
	s.log.Info("company summary generated",
		append(ctxutil.LogFields(ctx),
			"company_name", companyName,
			"url", target,
			"chars", len([]rune(text)),
			"lines", len(lines),
			"duration_ms", time.Since(start).Milliseconds(),
		)...,
	)
	return lines
}

func (s *Summarizer) fallback(ctx context.Context, companyName, reason, metricReason string, err error) []string {
	kv := append(ctxutil.LogFields(ctx), "company_name", companyName, "reason", reason)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	s.log.Warn("company summary fallback", kv...)
	observability.Current().IncFallback("summary", metricReason)
	return Placeholder(companyName, reason)
}

func fetchReason(err error) string {
	var ferr *pkgerrors.FetchError
	if errors.As(err, &ferr) {
		switch {
		case ferr.Timeout:
			return ReasonFetchTimeout
		case ferr.Status != 0:
			return ReasonFetchStatus
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonFetchTimeout
	}
	return ReasonFetchFailed
}

func buildPrompt(companyName, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this company information and write exactly 5 key points about %s.\n\n", companyName)
	b.WriteString("WEBSITE TEXT:\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString("Return exactly 5 clear, concise statements, one per line, with no numbering, no headings and no blank lines.\n")
	b.WriteString("Cover these aspects in order:\n")
	b.WriteString("1. Core business or mission\n")
	b.WriteString("2. Products or services\n")
	b.WriteString("3. Target market or customers\n")
	b.WriteString("4. Unique value proposition\n")
	b.WriteString("5. Company culture or approach\n")
	return b.String()
}

// listMarker matches leading "1.", "2)", "-", "*", "•" and "·" markers. Digits
// not followed by "." or ")" are content.
var listMarker = regexp.MustCompile(`^(?:(?:\d+[.)]|[-*•·])\s*)+`)

// ParseLines splits backend output into trimmed statements with list markers
// removed. Order is preserved and duplicates are kept.
func ParseLines(out string) []string {
	var lines []string
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(raw), ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == MaxLines {
			break
		}
	}
	return lines
}
