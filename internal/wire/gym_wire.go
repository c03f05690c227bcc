package wire

import (
	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGym(
	r chi.Router,
	gymHandler *adaptor.GymHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, log)

	r.With(auth).Get("/api/settings/gym", gymHandler.Settings)
	r.With(auth).Put("/api/settings/gym", gymHandler.UpdateSettings)
	r.With(auth).Get("/api/settings/admin", gymHandler.AdminProfile)
	r.With(auth).Get("/api/dashboard/stats", gymHandler.DashboardStats)
}
