package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"gym-management/internal/data/repository"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CronOrSession admits a request holding either a valid admin session or the
// scheduler's shared secret in X-Cron-Secret. Session requests get the usual
// identity context; secret requests pass through without one, which is how
// handlers tell scheduled runs from manual ones.
func CronOrSession(sessionRepo repository.SessionRepository, cronSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret := r.Header.Get("X-Cron-Secret"); secret != "" {
				if cronSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cronSecret)) != 1 {
					logger.Warn("Rejected cron request with bad secret")
					utils.ResponseUnauthorized(w, "Invalid cron secret")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			if _, err := uuid.Parse(parts[1]); err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), parts[1])
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetSessionContext(r.Context(), session.AdminID, session.GymID)
			ctx = utils.SetTokenContext(ctx, parts[1])

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
