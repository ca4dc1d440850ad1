package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter implements per-IP fixed-window rate limiting. Each client
// gets a counter that resets at the top of the window; the first request
// over the limit is rejected until the window rolls over.
type RateLimiter struct {
	windows sync.Map // map[string]*window
	stop    chan struct{}
}

type window struct {
	count   int
	started time.Time
	mu      sync.Mutex
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that admits at most maxPerMinute requests per
// client IP per one-minute window. Rejections carry a Retry-After header
// pointing at the window rollover.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + ":" + strconv.Itoa(maxPerMinute)

			ok, retryAfter := rl.allow(key, maxPerMinute)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeErrorEnvelope(w, http.StatusTooManyRequests,
					"RateLimitError", "too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string, maxPerMinute int) (bool, int) {
	val, _ := rl.windows.LoadOrStore(key, &window{started: time.Now()})
	win := val.(*window)

	win.mu.Lock()
	defer win.mu.Unlock()

	now := time.Now()
	if now.Sub(win.started) >= time.Minute {
		win.started = now
		win.count = 0
	}

	if win.count >= maxPerMinute {
		remaining := time.Minute - now.Sub(win.started)
		return false, int(remaining.Seconds()) + 1
	}

	win.count++
	return true, 0
}

// clientIP strips the port from RemoteAddr so one client maps to one key
// across connections.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.windows.Range(func(key, value any) bool {
				win := value.(*window)
				win.mu.Lock()
				idle := now.Sub(win.started)
				win.mu.Unlock()
				if idle > 10*time.Minute {
					rl.windows.Delete(key)
				}
				return true
			})
		}
	}
}
