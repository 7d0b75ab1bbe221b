package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"finchat/internal/httputil"
)

// RateLimitConfig describes a per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// Idle clients are dropped from the table after this long.
	ClientTTL time.Duration
}

// AuthRateLimitConfig is the stricter limit applied to credential
// endpoints.
func AuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 1, Burst: 5, ClientTTL: 10 * time.Minute}
}

// APIRateLimitConfig is the general limit applied to the API surface.
func APIRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 20, Burst: 40, ClientTTL: 10 * time.Minute}
}

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per remote IP.
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	clients map[string]*rateClient
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg,
		clients: make(map[string]*rateClient),
	}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				httputil.ErrorWithCode(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[ip]
	if !ok {
		// Opportunistic cleanup while the map is already locked.
		for addr, stale := range rl.clients {
			if now.Sub(stale.lastSeen) > rl.cfg.ClientTTL {
				delete(rl.clients, addr)
			}
		}
		c = &rateClient{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
