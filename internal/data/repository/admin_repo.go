package repository

import (
	"context"
	"fmt"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	UpdatePassword(ctx context.Context, adminID uuid.UUID, passwordHash string) error
	// ResetPassword updates the hash, consumes the reset OTP and revokes all
	// of the admin's sessions in one transaction.
	ResetPassword(ctx context.Context, adminID uuid.UUID, passwordHash, otpEmail string) error
}

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	query := `
		SELECT id, gym_id, email, password_hash, role,
		       created_at, updated_at, deleted_at
		FROM admin_users
		WHERE email = $1 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	query := `
		SELECT id, gym_id, email, password_hash, role,
		       created_at, updated_at, deleted_at
		FROM admin_users
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *adminRepository) UpdatePassword(ctx context.Context, adminID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE admin_users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, adminID, passwordHash, time.Now())
	if err != nil {
		r.log.Error("Failed to update password", zap.Error(err), zap.String("admin_id", adminID.String()))
		return fmt.Errorf("update password for %s: %w", adminID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %s not found", adminID.String())
	}

	return nil
}

func (r *adminRepository) ResetPassword(ctx context.Context, adminID uuid.UUID, passwordHash, otpEmail string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset password: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	result, err := tx.Exec(ctx, `
		UPDATE admin_users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`, adminID, passwordHash, now)
	if err != nil {
		r.log.Error("Failed to reset password", zap.Error(err), zap.String("admin_id", adminID.String()))
		return fmt.Errorf("reset password for %s: %w", adminID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %s not found", adminID.String())
	}

	if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE email = $1`, otpEmail); err != nil {
		r.log.Error("Failed to consume reset OTP", zap.Error(err), zap.String("email", otpEmail))
		return fmt.Errorf("consume reset OTP for %s: %w", otpEmail, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE admin_sessions
		SET revoked_at = $2
		WHERE admin_id = $1 AND revoked_at IS NULL
	`, adminID, now); err != nil {
		r.log.Error("Failed to revoke sessions", zap.Error(err), zap.String("admin_id", adminID.String()))
		return fmt.Errorf("revoke sessions for %s: %w", adminID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset password: %w", err)
	}

	return nil
}

func (r *adminRepository) scanOne(row pgx.Row) (*entity.AdminUser, error) {
	var admin entity.AdminUser
	err := row.Scan(
		&admin.ID,
		&admin.GymID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
		&admin.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin", zap.Error(err))
		return nil, fmt.Errorf("find admin: %w", err)
	}

	return &admin, nil
}
