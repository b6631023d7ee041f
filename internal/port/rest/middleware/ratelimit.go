package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/ahsanauddry027/safetails-sub000/internal/platform/metrics"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit rejects requests over quota with 429, keyed by scope and client
// IP. A nil limiter disables the check.
func RateLimit(l Limiter, scope string, m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(r.Context(), scope+":"+clientIP(r)) {
				if m != nil {
					m.RateLimitedTotal.WithLabelValues(scope).Inc()
				}
				response.Fail(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
