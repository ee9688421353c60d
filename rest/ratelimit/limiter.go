package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HeaderError reports a rate limit header that was present but not an
// integer.
type HeaderError struct {
	Header string
	Value  string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed rate limit header %s: %q", e.Header, e.Value)
}

// Bucket is the tracked state of one route: the window size, the requests
// left in it, and the unix second it resets at. Zero Limit means the server
// has not described the bucket yet.
type Bucket struct {
	mu        sync.Mutex
	Limit     int64
	Remaining int64
	Reset     int64
}

// Limiter coordinates requests against the per-route and global limits.
// Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[Route]*Bucket

	// global is held for the duration of an x-ratelimit-global penalty;
	// every request touches it before sending.
	global sync.Mutex

	// throttle caps overall request throughput below the platform's
	// 50-per-second global allowance.
	throttle *rate.Limiter

	logger *zap.Logger

	// sleep and now are swapped out by tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewLimiter creates a limiter with an empty bucket table.
func NewLimiter(logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{
		buckets:  make(map[Route]*Bucket),
		throttle: rate.NewLimiter(rate.Every(20*time.Millisecond), 50),
		logger:   logger,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

func (l *Limiter) bucket(route Route) *Bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[route]
	if !ok {
		b = &Bucket{}
		l.buckets[route] = b
	}
	return b
}

// Bucket returns a snapshot of a route's tracked state.
func (l *Limiter) Bucket(route Route) (limit, remaining, reset int64) {
	b := l.bucket(route)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Limit, b.Remaining, b.Reset
}

// Perform sends a request under rate limit control: it waits out the global
// penalty and the route's window, invokes send, updates the bucket from the
// response headers, and transparently retries 429 responses after the
// indicated delay.
func (l *Limiter) Perform(ctx context.Context, route Route, send func() (*http.Response, error)) (*http.Response, error) {
	for {
		// A held global lock means another request hit the global limit;
		// queue behind it.
		l.awaitGlobal()

		if err := l.throttle.Wait(ctx); err != nil {
			return nil, fmt.Errorf("global throttle: %w", err)
		}

		var b *Bucket
		if route.Kind != KindNone {
			b = l.bucket(route)
			b.mu.Lock()
			l.preHook(b, route)
			b.mu.Unlock()
		}

		resp, err := send()
		if err != nil {
			return nil, err
		}
		if route.Kind == KindNone {
			return resp, nil
		}

		retry, err := l.postHook(b, route, resp)
		if err != nil {
			return nil, err
		}
		if !retry {
			return resp, nil
		}
	}
}

// awaitGlobal blocks while another request serves a global penalty.
func (l *Limiter) awaitGlobal() {
	l.global.Lock()
	l.global.Unlock()
}

// preHook waits out the route's window before a request. Caller holds the
// bucket lock.
func (l *Limiter) preHook(b *Bucket, route Route) {
	if b.Limit == 0 {
		// Bucket not yet described by the server.
		return
	}

	current := l.now().Unix()
	if current > b.Reset {
		b.Remaining = b.Limit
		return
	}

	if b.Remaining == 0 {
		// Pad past the reset second to avoid a boundary 429.
		delay := time.Duration(b.Reset-current)*time.Second + 500*time.Millisecond
		l.logger.Debug("pre-emptive rate limit wait",
			zap.Int("route_kind", int(route.Kind)),
			zap.Uint64("major", route.Major),
			zap.Duration("delay", delay),
		)
		l.sleep(delay)
		return
	}

	b.Remaining--
}

// postHook folds the response headers into the bucket and reports whether
// the request must be retried. A 429 carrying x-ratelimit-global serves its
// penalty under the global lock so every other request queues behind it.
func (l *Limiter) postHook(b *Bucket, route Route, resp *http.Response) (bool, error) {
	if resp.Header.Get("x-ratelimit-global") != "" {
		l.global.Lock()
		defer l.global.Unlock()

		retryAfter, ok, err := parseHeader(resp.Header, "retry-after")
		if err != nil || !ok {
			return false, err
		}
		l.logger.Warn("globally rate limited",
			zap.Int64("retry_after_ms", retryAfter),
		)
		l.sleep(time.Duration(retryAfter) * time.Millisecond)
		return true, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok, err := parseHeader(resp.Header, "x-ratelimit-limit"); err != nil {
		return false, err
	} else if ok {
		b.Limit = v
	}
	if v, ok, err := parseHeader(resp.Header, "x-ratelimit-remaining"); err != nil {
		return false, err
	} else if ok {
		b.Remaining = v
	}
	if v, ok, err := parseHeader(resp.Header, "x-ratelimit-reset"); err != nil {
		return false, err
	} else if ok {
		b.Reset = v
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}

	retryAfter, ok, err := parseHeader(resp.Header, "retry-after")
	if err != nil || !ok {
		return false, err
	}
	l.logger.Debug("rate limited on route",
		zap.Int("route_kind", int(route.Kind)),
		zap.Uint64("major", route.Major),
		zap.Int64("retry_after_ms", retryAfter),
	)
	l.sleep(time.Duration(retryAfter) * time.Millisecond)
	return true, nil
}

func parseHeader(h http.Header, name string) (int64, bool, error) {
	raw := h.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, &HeaderError{Header: name, Value: raw}
	}
	return v, true, nil
}
