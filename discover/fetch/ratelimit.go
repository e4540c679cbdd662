package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a minimum interval between requests to the same
// host. It is the only mutable shared state in the engine: one instance
// is constructed per process and injected into every Fetcher.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewRateLimiter creates a limiter enforcing the given minimum interval
// between requests to a single host
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until a request to host is allowed or the context is
// cancelled. Hosts are keyed by their base domain so www. and bare
// variants share a budget.
func (r *RateLimiter) Wait(ctx context.Context, host string) error {
	return r.limiterFor(host).Wait(ctx)
}

func (r *RateLimiter) limiterFor(host string) *rate.Limiter {
	key := baseDomain(host)

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(r.interval), 1)
		r.limiters[key] = l
	}
	return l
}
