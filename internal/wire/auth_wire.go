package wire

import (
	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	limiters *Limiters,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// OTP issue and verify endpoints carry per-IP throttles.
	sendLimit := middleware.RateLimit(limiters.Send, "otp-send", log)
	verifyLimit := middleware.RateLimit(limiters.Verify, "otp-verify", log)

	r.With(sendLimit).Post("/api/auth/send-signup-otp", authHandler.SendSignupOTP)
	r.With(verifyLimit).Post("/api/auth/verify-signup-otp", authHandler.VerifySignupOTP)
	r.Post("/api/auth/register-finalize", authHandler.RegisterFinalize)
	r.Post("/api/auth/register-cancel", authHandler.RegisterCancel)
	r.Post("/api/gym/check-slug", authHandler.CheckSlug)
	r.Post("/api/auth/login", authHandler.Login)

	r.With(sendLimit).Post("/api/auth/forgot-password/send-otp", authHandler.ForgotPasswordSend)
	r.With(verifyLimit).Post("/api/auth/forgot-password/verify-otp", authHandler.ForgotPasswordVerify)
	r.Post("/api/auth/forgot-password/reset", authHandler.ForgotPasswordReset)

	// ==================== PROTECTED ROUTES ====================
	auth := middleware.AuthSession(repo.Session, log)
	r.With(auth).Post("/api/auth/logout", authHandler.Logout)
	r.With(auth).Post("/api/settings/change-password", authHandler.ChangePassword)
}
