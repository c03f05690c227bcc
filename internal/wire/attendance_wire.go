package wire

import (
	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAttendance(
	r chi.Router,
	attendanceHandler *adaptor.AttendanceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/attendance", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/scan", attendanceHandler.Scan)
		r.Get("/", attendanceHandler.List)
	})
}
