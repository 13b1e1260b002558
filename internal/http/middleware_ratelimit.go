package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/data"
)

// RateLimiterOptions configures the per-IP token bucket applied to
// rate-limited routes (see routeTable).
type RateLimiterOptions struct {
	// Requests per Window defines the steady refill rate.
	Requests int
	Window   time.Duration

	// Burst is extra headroom above the steady rate.
	Burst int

	// TrustProxy controls whether X-Forwarded-For identifies the client.
	TrustProxy bool

	// Disabled turns the middleware into a pass-through. Development
	// runs set this so local logins never throttle.
	Disabled bool

	Time data.TimeProvider
}

// RateLimiter is a token-bucket limiter keyed by client IP. Buckets are
// created on first sight and reaped once idle for a full window, so
// memory stays proportional to recently active clients.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate     float64 // tokens per second
	capacity float64
	window   time.Duration
	trust    bool
	disabled bool
	time     data.TimeProvider
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter constructs a RateLimiter.
func NewRateLimiter(opts RateLimiterOptions) *RateLimiter {
	if opts.Requests < 1 {
		opts.Requests = 1
	}
	if opts.Window <= 0 {
		opts.Window = time.Minute
	}
	if opts.Burst < 0 {
		opts.Burst = 0
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(opts.Requests) / opts.Window.Seconds(),
		capacity: float64(opts.Requests + opts.Burst),
		window:   opts.Window,
		trust:    opts.TrustProxy,
		disabled: opts.Disabled,
		time:     opts.Time,
	}
}

// Allow consumes one token for the key, reporting whether the request
// may proceed.
func (l *RateLimiter) Allow(key string) bool {
	now := l.time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * l.rate
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Middleware returns the rate limit stage of the pipeline. Routes not
// marked RateLimited in the classification table pass through
// untouched.
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.disabled || !Classify(r.URL.Path).RateLimited {
				next.ServeHTTP(w, r)
				return
			}

			if !l.Allow(clientIP(r, l.trust)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				WriteError(w, ErrorParams{
					Code:    http.StatusTooManyRequests,
					ErrCode: errCodeRateLimit,
					Err:     errors.New("too many requests, slow down"),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StartCleanup reaps idle buckets until the context is cancelled.
func (l *RateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.reap()
			}
		}
	}()
}

func (l *RateLimiter) reap() {
	cutoff := l.time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
