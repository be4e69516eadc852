// Package rate_limiter throttles requests per client IP with token buckets.
package rate_limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*clientLimiter
	now      func() time.Time
}

// New returns a Limiter allowing rps requests per second per IP with the given burst.
func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (l *Limiter) GetVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = &clientLimiter{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.GetVisitor(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartVisitorCleanupLoop forgets visitors idle for longer than ttl until ctx is done.
func (l *Limiter) StartVisitorCleanupLoop(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup(ttl)
		}
	}
}

func (l *Limiter) cleanup(ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > ttl {
			delete(l.visitors, ip)
		}
	}
}

func (l *Limiter) CleanupAllVisitors() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visitors = make(map[string]*clientLimiter)
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
