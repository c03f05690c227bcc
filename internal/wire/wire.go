package wire

import (
	"net/http"

	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/internal/usecase"
	"gym-management/pkg/mailer"
	"gym-management/pkg/middleware"
	"gym-management/pkg/ratelimit"
	"gym-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Limiters are the per-endpoint-group OTP throttles, owned by the caller so
// their sweep goroutines can be stopped on shutdown.
type Limiters struct {
	Send   *ratelimit.Limiter
	Verify *ratelimit.Limiter
}

// Wiring initializes all dependencies.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	limiters *Limiters,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, limiters, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	limiters *Limiters,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, limiters, logger)
	wireMember(r, handler.Member, repo, logger)
	wireAttendance(r, handler.Attendance, repo, logger)
	wireGym(r, handler.Gym, repo, logger)
	wireReminder(r, handler.Reminder, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
