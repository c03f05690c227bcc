package repository

import (
	"context"
	"fmt"

	"gym-management/internal/data/entity"
	"gym-management/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	// Replace deletes any pending record for the email and inserts the new
	// one, keeping the one-record-per-email rule.
	Replace(ctx context.Context, otp *entity.OTP) error
	FindByEmail(ctx context.Context, email string) (*entity.OTP, error)
	MarkVerified(ctx context.Context, email string) error
	DeleteByEmail(ctx context.Context, email string) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Replace(ctx context.Context, otp *entity.OTP) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace OTP: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE email = $1`, otp.Email); err != nil {
		r.log.Error("Failed to delete prior OTP", zap.Error(err), zap.String("email", otp.Email))
		return fmt.Errorf("delete prior OTP for %s: %w", otp.Email, err)
	}

	query := `
		INSERT INTO otps (id, email, code_hash, purpose, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, query,
		otp.ID,
		otp.Email,
		otp.CodeHash,
		otp.Purpose,
		otp.ExpiresAt,
		otp.Verified,
		otp.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("create OTP for %s: %w", otp.Email, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace OTP: %w", err)
	}

	return nil
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	query := `
		SELECT id, email, code_hash, purpose, expires_at, verified, created_at
		FROM otps
		WHERE email = $1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, email).Scan(
		&otp.ID,
		&otp.Email,
		&otp.CodeHash,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.Verified,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, email string) error {
	query := `
		UPDATE otps
		SET verified = true
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to mark OTP verified", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("mark OTP verified for %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP for %s not found", email)
	}

	return nil
}

func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email)
	if err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("delete OTP for %s: %w", email, err)
	}

	return nil
}
