package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/farawebdata/backend/internal/metrics"
)

// securityHeaders mirrors the defaults of common hardening middleware,
// tightened for a JSON-only API.
var securityHeaders = [][2]string{
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Origin-Agent-Cluster", "?1"},
	{"Referrer-Policy", "no-referrer"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"X-XSS-Protection", "0"},
}

// SecurityHeaders adds security response headers (CSP, HSTS, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		next.ServeHTTP(w, r)
	})
}

const rateLimitMessage = "Too many requests, please try again later."

// RateLimiter enforces a fixed request budget per client address per window.
type RateLimiter struct {
	store             RateLimitStore
	max               int
	window            time.Duration
	trustedProxyCount int
}

// NewRateLimiter creates a rate limiter allowing max requests per window for
// each client address. trustedProxyCount is the number of reverse proxies
// in front of the service that append to X-Forwarded-For.
func NewRateLimiter(store RateLimitStore, max int, window time.Duration, trustedProxyCount int) *RateLimiter {
	return &RateLimiter{
		store:             store,
		max:               max,
		window:            window,
		trustedProxyCount: trustedProxyCount,
	}
}

// Middleware returns an http.Handler that enforces rate limits. When the
// store fails the request is let through and the failure logged.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)

		res, err := rl.store.Hit(r.Context(), ip, rl.max, rl.window)
		if err != nil {
			slog.ErrorContext(r.Context(), "rate limit store failed", "client_ip", ip, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", retryAfterSeconds(time.Until(res.ResetAt)))
			writeJSON(w, r, http.StatusTooManyRequests, errorResponse{Error: rateLimitMessage})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			if ip := strings.TrimSpace(parts[idx]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
