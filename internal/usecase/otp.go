package usecase

import (
	"context"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/pkg/mailer"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

// issueOTP mints a fresh code for the email, replacing any pending one, and
// mails it. If the mail cannot be sent the record is removed again so the
// caller never ends up with a code it was never shown.
func (s *authService) issueOTP(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return utils.ErrInternal("failed to generate code", err)
	}

	now := time.Now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		Email:     email,
		CodeHash:  utils.HashOTP(code),
		Purpose:   purpose,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
		Verified:  false,
	}

	if err := s.repo.OTP.Replace(ctx, otp); err != nil {
		s.log.Error("Failed to store OTP", zap.Error(err), zap.String("email", email))
		return utils.ErrInternal("failed to store code", err)
	}

	var subject, body string
	switch purpose {
	case entity.OTPPurposePasswordReset:
		subject, body, err = mailer.PasswordResetOTPEmail(s.config.App.Name, code, s.config.OTP.ExpiryMinutes)
	default:
		subject, body, err = mailer.SignupOTPEmail(s.config.App.Name, email, code, s.config.OTP.ExpiryMinutes)
	}
	if err != nil {
		s.log.Error("Failed to render OTP email", zap.Error(err))
		return utils.ErrInternal("failed to render email", err)
	}

	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", email))
		if delErr := s.repo.OTP.DeleteByEmail(ctx, email); delErr != nil {
			s.log.Error("Failed to roll back OTP after send failure",
				zap.Error(delErr), zap.String("email", email))
		}
		return utils.ErrInternal("failed to send verification email", err)
	}

	s.log.Info("OTP issued",
		zap.String("email", email),
		zap.String("purpose", string(purpose)))

	return nil
}

// verifyOTP checks a submitted code and marks the record verified on a match.
// Verification is idempotent; a wrong code leaves the record in place.
func (s *authService) verifyOTP(ctx context.Context, email, code string, purpose entity.OTPPurpose) error {
	otp, err := s.loadOTP(ctx, email, purpose)
	if err != nil {
		return err
	}

	if !utils.OTPEqual(code, otp.CodeHash) {
		return utils.ErrValidation("invalid verification code")
	}

	if !otp.Verified {
		if err := s.repo.OTP.MarkVerified(ctx, email); err != nil {
			s.log.Error("Failed to mark OTP verified", zap.Error(err), zap.String("email", email))
			return utils.ErrInternal("failed to verify code", err)
		}
	}

	return nil
}

// checkConsumable gates finalize operations: the record must exist, be
// unexpired, be verified and still match. The actual deletion happens inside
// the finalize transaction, not here.
func (s *authService) checkConsumable(ctx context.Context, email, code string, purpose entity.OTPPurpose) error {
	otp, err := s.loadOTP(ctx, email, purpose)
	if err != nil {
		return err
	}

	if !otp.Verified {
		return utils.ErrValidation("verification code has not been verified")
	}
	if !utils.OTPEqual(code, otp.CodeHash) {
		return utils.ErrValidation("invalid verification code")
	}

	return nil
}

func (s *authService) cancelOTP(ctx context.Context, email string) error {
	if err := s.repo.OTP.DeleteByEmail(ctx, email); err != nil {
		s.log.Error("Failed to delete OTP", zap.Error(err), zap.String("email", email))
		return utils.ErrInternal("failed to cancel verification", err)
	}
	return nil
}

// loadOTP fetches the pending record and applies the shared gates: a missing
// record or purpose mismatch reads as not found, an expired one is removed
// and reported gone.
func (s *authService) loadOTP(ctx context.Context, email string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	otp, err := s.repo.OTP.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return nil, utils.ErrInternal("failed to check code", err)
	}
	if otp == nil || otp.Purpose != purpose {
		return nil, utils.ErrNotFound("no verification code found")
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.repo.OTP.DeleteByEmail(ctx, email); err != nil {
			s.log.Error("Failed to delete expired OTP", zap.Error(err), zap.String("email", email))
		}
		return nil, utils.ErrGone("verification code has expired")
	}

	return otp, nil
}
