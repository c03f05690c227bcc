package repository

import (
	"context"
	"fmt"

	"gym-management/internal/data/entity"
	"gym-management/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReminderLogRepository interface {
	Create(ctx context.Context, log *entity.ReminderLog) error
	FindLatest(ctx context.Context) (*entity.ReminderLog, error)
}

type reminderLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReminderLogRepository(db database.PgxIface, log *zap.Logger) ReminderLogRepository {
	return &reminderLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "reminder_log")),
	}
}

func (r *reminderLogRepository) Create(ctx context.Context, logEntry *entity.ReminderLog) error {
	query := `
		INSERT INTO reminder_logs (id, run_at, manual, gyms_processed,
		                           emails_sent, emails_failed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		logEntry.ID,
		logEntry.RunAt,
		logEntry.Manual,
		logEntry.GymsProcessed,
		logEntry.EmailsSent,
		logEntry.EmailsFailed,
		logEntry.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reminder log", zap.Error(err))
		return fmt.Errorf("create reminder log: %w", err)
	}

	return nil
}

func (r *reminderLogRepository) FindLatest(ctx context.Context) (*entity.ReminderLog, error) {
	query := `
		SELECT id, run_at, manual, gyms_processed, emails_sent, emails_failed, created_at
		FROM reminder_logs
		ORDER BY run_at DESC
		LIMIT 1
	`

	var logEntry entity.ReminderLog
	err := r.db.QueryRow(ctx, query).Scan(
		&logEntry.ID,
		&logEntry.RunAt,
		&logEntry.Manual,
		&logEntry.GymsProcessed,
		&logEntry.EmailsSent,
		&logEntry.EmailsFailed,
		&logEntry.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest reminder log", zap.Error(err))
		return nil, fmt.Errorf("find latest reminder log: %w", err)
	}

	return &logEntry, nil
}
