package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/viralscript-backend/internal/observability"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/envutil"
	"github.com/yungbote/viralscript-backend/internal/platform/httpx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultTimeout   = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// Fetcher retrieves a page body. Failures are *errors.FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (status int, body []byte, err error)
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		Timeout:   envutil.Seconds("FETCH_TIMEOUT_SECONDS", DefaultTimeout, log),
		UserAgent: envutil.String("FETCH_USER_AGENT", DefaultUserAgent, log),
	}
}

type httpFetcher struct {
	log       *logger.Logger
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewHTTPFetcher(log *logger.Logger, cfg Config) Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &httpFetcher{
		log:       log.With("service", "WebFetcher"),
		client:    &http.Client{Timeout: cfg.Timeout},
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		observability.Current().IncFetch("invalid_url")
		return 0, nil, &pkgerrors.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		timeout := httpx.IsTimeout(err)
		if timeout {
			observability.Current().IncFetch("timeout")
		} else {
			observability.Current().IncFetch("error")
		}
		return 0, nil, &pkgerrors.FetchError{URL: url, Timeout: timeout, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		timeout := httpx.IsTimeout(err)
		observability.Current().IncFetch("read_error")
		return resp.StatusCode, nil, &pkgerrors.FetchError{URL: url, Timeout: timeout, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.Current().IncFetch("status")
		return resp.StatusCode, body, &pkgerrors.FetchError{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	observability.Current().IncFetch("ok")
	f.log.Debug("fetched company page", "url", url, "status", resp.StatusCode, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())
	return resp.StatusCode, body, nil
}
