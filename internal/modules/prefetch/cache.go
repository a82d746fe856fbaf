package prefetch

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/viralscript-backend/internal/observability"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

const (
	DefaultTTL           = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Key identifies a company by name and normalized URL.
func Key(companyName, normalizedURL string) string {
	return companyName + ":" + normalizedURL
}

// Handle is an in-flight or finished summary computation.
type Handle struct {
	done    chan struct{}
	cancel  context.CancelFunc
	result  []string
	started time.Time
	expires time.Time
}

// Wait blocks until the computation finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) ([]string, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel stops the computation if it is still running.
func (h *Handle) Cancel() { h.cancel() }

func (h *Handle) Done() <-chan struct{} { return h.done }

// Cache holds prefetched summaries until they are taken or expire.
type Cache struct {
	log  *logger.Logger
	ttl  time.Duration
	base context.Context
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*Handle
}

// NewCache builds a cache whose computations run under base, not under the
// request that started them.
func NewCache(base context.Context, log *logger.Logger, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if base == nil {
		base = context.Background()
	}
	return &Cache{
		log:     log.With("service", "PrefetchCache"),
		ttl:     ttl,
		base:    base,
		now:     time.Now,
		entries: map[string]*Handle{},
	}
}

// GetOrStart returns the live handle for key or starts fn under a new one.
// The check and insert happen under one lock, so concurrent callers start fn
// at most once per key.
func (c *Cache) GetOrStart(key string, fn func(ctx context.Context) []string) (*Handle, bool) {
	c.mu.Lock()
	now := c.now()
	if h, ok := c.entries[key]; ok {
		if now.Before(h.expires) {
			c.mu.Unlock()
			return h, false
		}
		h.Cancel()
		delete(c.entries, key)
	}
	ctx, cancel := context.WithCancel(c.base)
	h := &Handle{
		done:    make(chan struct{}),
		cancel:  cancel,
		started: now,
		expires: now.Add(c.ttl),
	}
	c.entries[key] = h
	n := len(c.entries)
	c.mu.Unlock()

	observability.Current().SetPrefetchEntries(n)
	go func() {
		defer close(h.done)
		defer cancel()
		h.result = fn(ctx)
	}()
	c.log.Debug("prefetch started", "key", key)
	return h, true
}

// Take removes and returns the live handle for key.
func (c *Cache) Take(key string) (*Handle, bool) {
	c.mu.Lock()
	h, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	n := len(c.entries)
	c.mu.Unlock()
	observability.Current().SetPrefetchEntries(n)

	if !ok {
		return nil, false
	}
	if !c.now().Before(h.expires) {
		h.Cancel()
		return nil, false
	}
	return h, true
}

// Sweep cancels and evicts expired entries. It returns how many were evicted.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	now := c.now()
	var evicted int
	for key, h := range c.entries {
		if now.Before(h.expires) {
			continue
		}
		h.Cancel()
		delete(c.entries, key)
		evicted++
	}
	n := len(c.entries)
	c.mu.Unlock()

	observability.Current().SetPrefetchEntries(n)
	if evicted > 0 {
		c.log.Debug("prefetch entries evicted", "evicted", evicted, "remaining", n)
	}
	return evicted
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Run sweeps every interval until ctx is done, then cancels what is left.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			c.closeAll()
			return
		case <-t.C:
			c.Sweep()
		}
	}
}

func (c *Cache) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, h := range c.entries {
		h.Cancel()
		delete(c.entries, key)
	}
}
