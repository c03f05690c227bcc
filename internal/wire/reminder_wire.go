package wire

import (
	"gym-management/internal/adaptor"
	"gym-management/internal/data/repository"
	"gym-management/pkg/middleware"
	"gym-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReminder(
	r chi.Router,
	reminderHandler *adaptor.ReminderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Run accepts the scheduler's shared secret as an alternative to a
	// session; status is session only.
	gate := middleware.CronOrSession(repo.Session, config.Reminder.CronSecret, log)
	auth := middleware.AuthSession(repo.Session, log)

	r.With(gate).Post("/api/reminders/run", reminderHandler.Run)
	r.With(auth).Get("/api/reminders/status", reminderHandler.Status)
}
