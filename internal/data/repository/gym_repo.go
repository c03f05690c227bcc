package repository

import (
	"context"
	"fmt"

	"gym-management/internal/data/entity"
	"gym-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GymRepository interface {
	// CreateWithOwner creates the gym, its owner admin account and consumes
	// the signup OTP in one transaction so a verification code finalizes at
	// most one registration.
	CreateWithOwner(ctx context.Context, gym *entity.Gym, admin *entity.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Gym, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Gym, error)
	Update(ctx context.Context, gym *entity.Gym) error
}

type gymRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGymRepository(db database.PgxIface, log *zap.Logger) GymRepository {
	return &gymRepository{
		db:  db,
		log: log.With(zap.String("repository", "gym")),
	}
}

func (r *gymRepository) CreateWithOwner(ctx context.Context, gym *entity.Gym, admin *entity.AdminUser) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create gym: %w", err)
	}
	defer tx.Rollback(ctx)

	gymQuery := `
		INSERT INTO gyms (id, name, slug, owner_name, owner_email, owner_phone,
		                  trial_ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, gymQuery,
		gym.ID,
		gym.Name,
		gym.Slug,
		gym.OwnerName,
		gym.OwnerEmail,
		gym.OwnerPhone,
		gym.TrialEndsAt,
		gym.CreatedAt,
		gym.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create gym", zap.Error(err), zap.String("slug", gym.Slug))
		return fmt.Errorf("create gym %s: %w", gym.Slug, err)
	}

	adminQuery := `
		INSERT INTO admin_users (id, gym_id, email, password_hash, role,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, adminQuery,
		admin.ID,
		admin.GymID,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create owner admin", zap.Error(err), zap.String("email", admin.Email))
		return fmt.Errorf("create owner admin %s: %w", admin.Email, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE email = $1`, admin.Email); err != nil {
		r.log.Error("Failed to consume signup OTP", zap.Error(err), zap.String("email", admin.Email))
		return fmt.Errorf("consume signup OTP for %s: %w", admin.Email, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create gym: %w", err)
	}

	return nil
}

func (r *gymRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Gym, error) {
	query := `
		SELECT id, name, slug, owner_name, owner_email, owner_phone,
		       trial_ends_at, created_at, updated_at, deleted_at
		FROM gyms
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *gymRepository) FindBySlug(ctx context.Context, slug string) (*entity.Gym, error) {
	query := `
		SELECT id, name, slug, owner_name, owner_email, owner_phone,
		       trial_ends_at, created_at, updated_at, deleted_at
		FROM gyms
		WHERE slug = $1 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, slug))
}

func (r *gymRepository) Update(ctx context.Context, gym *entity.Gym) error {
	query := `
		UPDATE gyms
		SET name = $2, slug = $3, owner_name = $4, owner_email = $5,
		    owner_phone = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		gym.ID,
		gym.Name,
		gym.Slug,
		gym.OwnerName,
		gym.OwnerEmail,
		gym.OwnerPhone,
		gym.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update gym", zap.Error(err), zap.String("gym_id", gym.ID.String()))
		return fmt.Errorf("update gym %s: %w", gym.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gym %s not found", gym.ID.String())
	}

	return nil
}

func (r *gymRepository) scanOne(row pgx.Row) (*entity.Gym, error) {
	var gym entity.Gym
	err := row.Scan(
		&gym.ID,
		&gym.Name,
		&gym.Slug,
		&gym.OwnerName,
		&gym.OwnerEmail,
		&gym.OwnerPhone,
		&gym.TrialEndsAt,
		&gym.CreatedAt,
		&gym.UpdatedAt,
		&gym.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find gym", zap.Error(err))
		return nil, fmt.Errorf("find gym: %w", err)
	}

	return &gym, nil
}
