package wire

import (
	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMember(
	r chi.Router,
	memberHandler *adaptor.MemberHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/members", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", memberHandler.List)
		r.Post("/", memberHandler.Create)
		r.Get("/{id}", memberHandler.Get)
		r.Patch("/{id}", memberHandler.Update)
		r.Delete("/{id}", memberHandler.Delete)
		r.Post("/{id}/renew", memberHandler.Renew)
		r.Get("/{id}/attendance", memberHandler.Attendance)
	})
}
