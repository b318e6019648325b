package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

// ipRateLimiter gives every client address its own token bucket holding
// requests tokens that refill evenly over window.
type ipRateLimiter struct {
	every rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(requests int, window time.Duration) *ipRateLimiter {
	if requests <= 0 || window <= 0 {
		return &ipRateLimiter{every: rate.Inf, clients: make(map[string]*clientLimiter)}
	}
	return &ipRateLimiter{
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *ipRateLimiter) allow(key string, now time.Time) bool {
	if l.every == rate.Inf {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) >= maxTrackedClients {
		l.pruneLocked(now)
	}
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// pruneLocked forgets clients whose bucket has fully refilled.
func (l *ipRateLimiter) pruneLocked(now time.Time) {
	idle := time.Duration(float64(l.burst) / float64(l.every) * float64(time.Second))
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > idle {
			delete(l.clients, key)
		}
	}
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r), time.Now()) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
