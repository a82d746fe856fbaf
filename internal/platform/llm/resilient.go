package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/yungbote/viralscript-backend/internal/observability"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/httpx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// resilientClient bounds every attempt with a timeout, retries retryable
// failures with exponential backoff and stops calling a backend that keeps
// failing.
type resilientClient struct {
	inner      Client
	log        *logger.Logger
	breaker    *gobreaker.CircuitBreaker
	timeout    time.Duration
	maxRetries int

	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewResilient(log *logger.Logger, inner Client, cfg Config) Client {
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	l := log.With("service", "GenerationClient", "provider", inner.Provider())
	return &resilientClient{
		inner: inner,
		log:   l,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "llm-" + inner.Provider(),
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= uint32(failures)
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				l.Warn("generation circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
		timeout:         timeout,
		maxRetries:      cfg.MaxRetries,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

func (r *resilientClient) Provider() string { return r.inner.Provider() }

func (r *resilientClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	var out string
	attempt := 0

	call := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		start := time.Now()
		res, err := r.breaker.Execute(func() (interface{}, error) {
			return r.inner.Generate(callCtx, prompt, opts)
		})
		observability.Current().ObserveLLMRequest(r.inner.Provider(), opts.Op, outcome(err), time.Since(start))
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil || !httpx.IsRetryableError(err) {
				return backoff.Permanent(err)
			}
			r.log.Warn("generation request retrying",
				"op", opts.Op,
				"attempt", attempt,
				"max_retries", r.maxRetries,
				"error", err.Error(),
			)
			return err
		}
		out, _ = res.(string)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = 0

	err := backoff.Retry(call, backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.maxRetries)), ctx))
	if err != nil {
		var gerr *pkgerrors.GenerationError
		if errors.As(err, &gerr) {
			return "", err
		}
		return "", &pkgerrors.GenerationError{Op: opts.Op, Status: httpx.StatusCode(err), Err: err}
	}
	return out, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case httpx.IsTimeout(err):
		return "timeout"
	}
	return "error"
}
