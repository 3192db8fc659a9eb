package httpmiddleware

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the per-client sliding window limiter.
type RateLimitConfig struct {
	// Max requests allowed per Window.
	Max int
	// Window length of the sliding window.
	Window time.Duration
	// KeyFunc derives the limiter key from a request; nil means client IP.
	KeyFunc func(*http.Request) string
}

// window holds request counts for the current and previous interval of one
// client. The previous count is weighted by its remaining overlap with the
// sliding window, which smooths bursts at interval boundaries.
type window struct {
	prev      float64
	curr      float64
	currStart time.Time
}

type limiter struct {
	max     float64
	span    time.Duration
	keyFn   func(*http.Request) string
	mu      sync.Mutex
	clients map[string]*window
}

func newLimiter(cfg RateLimitConfig) *limiter {
	keyFn := cfg.KeyFunc
	if keyFn == nil {
		keyFn = clientIP
	}
	return &limiter{
		max:     float64(cfg.Max),
		span:    cfg.Window,
		keyFn:   keyFn,
		clients: make(map[string]*window),
	}
}

func (l *limiter) take(key string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, found := l.clients[key]
	if !found {
		w = &window{currStart: now}
		l.clients[key] = w
	}

	if elapsed := now.Sub(w.currStart); elapsed >= l.span {
		if elapsed >= 2*l.span {
			w.prev = 0
		} else {
			w.prev = w.curr
		}
		w.curr = 0
		w.currStart = now.Truncate(l.span)
	}

	weight := 1 - now.Sub(w.currStart).Seconds()/l.span.Seconds()
	if weight < 0 {
		weight = 0
	}
	used := w.prev*weight + w.curr
	resetAt = w.currStart.Add(l.span)

	if used >= l.max {
		return 0, resetAt, false
	}

	w.curr++
	remaining = int(l.max - used - 1)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetAt, true
}

func (l *limiter) evictStale(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.clients {
		if now.Sub(w.currStart) >= 2*l.span {
			delete(l.clients, key)
		}
	}
}

// RateLimit enforces a per-client sliding window limit. Rejected requests
// get 429 with a JSON body; every response carries X-RateLimit-Limit,
// X-RateLimit-Remaining, and X-RateLimit-Reset headers. Stale client
// entries are evicted in the background until ctx is cancelled.
func RateLimit(ctx context.Context, cfg RateLimitConfig) Middleware {
	l := newLimiter(cfg)

	go func() {
		ticker := time.NewTicker(2 * cfg.Window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.evictStale(now)
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, resetAt, ok := l.take(l.keyFn(r), time.Now())

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(l.max)))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := math.Ceil(time.Until(resetAt).Seconds())
				if retryAfter < 0 {
					retryAfter = 0
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    http.StatusTooManyRequests,
					"message": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
