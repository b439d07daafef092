package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/productivite/productivite-server/internal/http/response"
	"github.com/productivite/productivite-server/internal/ratelimit"
)

// rateLimitMiddleware enforces per-caller request budgets.
// Returns 429 Too Many Requests with a Retry-After header when exceeded.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := s.limiterFor(r)
		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := rateLimitKey(r)
		if !limiter.Allow(key) {
			retryAfter := limiter.RetryAfter(key)
			seconds := int(retryAfter/time.Second) + 1
			w.Header().Set("Retry-After", strconv.Itoa(seconds))

			s.logger.Warn("Rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
			)
			response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterFor selects the budget for a request. Auth endpoints have the
// tightest budget, search gets its own, and every other API write shares
// the general budget. Public reads are unlimited.
func (s *Server) limiterFor(r *http.Request) *ratelimit.KeyedRateLimiter {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/auth/"):
		return s.authLimiter
	case strings.HasPrefix(path, "/api/v1/search"):
		return s.searchLimiter
	case strings.HasPrefix(path, "/api/v1/"):
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			return s.apiLimiter
		}
	}
	return nil
}

// rateLimitKey identifies the caller: user ID when authenticated, client
// IP otherwise. Runs after the auth middleware so the user is in context.
func rateLimitKey(r *http.Request) string {
	if userID := maybeUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	return "ip:" + getClientIP(r)
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For (may contain multiple IPs, first is client).
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in the chain.
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP.
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
