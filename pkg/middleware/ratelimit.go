package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"gym-management/pkg/ratelimit"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit throttles requests per client IP. The prefix keeps separate
// budgets per endpoint group sharing one limiter store.
func RateLimit(limiter *ratelimit.Limiter, prefix string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			result := limiter.Allow(prefix + ":" + ip)
			if !result.Allowed {
				retryIn := int(time.Until(result.ResetAt).Minutes()) + 1

				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("prefix", prefix),
					zap.String("path", r.URL.Path),
				)

				plural := ""
				if retryIn > 1 {
					plural = "s"
				}
				utils.ResponseTooManyRequests(w,
					fmt.Sprintf("Too many requests. Please try again in %d minute%s.", retryIn, plural))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP resolves the caller's network address. X-Real-IP and the last
// entry of X-Forwarded-For are set by the trusted proxy; earlier entries are
// client-controlled and must not be used.
func ClientIP(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[len(parts)-1])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
