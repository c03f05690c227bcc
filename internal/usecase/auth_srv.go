package usecase

import (
	"context"
	"strings"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/data/repository"
	"gym-management/internal/dto/request"
	"gym-management/internal/dto/response"
	"gym-management/pkg/mailer"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SendSignupOTP(ctx context.Context, req *request.SendSignupOTPRequest) error
	VerifySignupOTP(ctx context.Context, req *request.VerifySignupOTPRequest) error
	RegisterFinalize(ctx context.Context, req *request.RegisterFinalizeRequest, userAgent, ip string) (*response.AuthResponse, error)
	RegisterCancel(ctx context.Context, req *request.RegisterCancelRequest) error
	CheckSlug(ctx context.Context, req *request.CheckSlugRequest) (*response.SlugAvailability, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPasswordSend(ctx context.Context, req *request.ForgotPasswordSendRequest) error
	ForgotPasswordVerify(ctx context.Context, req *request.ForgotPasswordVerifyRequest) error
	ForgotPasswordReset(ctx context.Context, req *request.ForgotPasswordResetRequest) error
	ChangePassword(ctx context.Context, adminID string, req *request.ChangePasswordRequest, userAgent, ip string) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log,
	}
}

// NormalizeEmail lower-cases and trims an address. Every OTP and account
// lookup goes through this so the same mailbox never yields two records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SendSignupOTP(ctx context.Context, req *request.SendSignupOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	email := NormalizeEmail(req.Email)

	// Signup codes are only for addresses that do not hold an account yet.
	existing, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return utils.ErrInternal("failed to check email", err)
	}
	if existing != nil {
		return utils.ErrConflict("email already registered")
	}

	return s.issueOTP(ctx, email, entity.OTPPurposeSignup)
}

func (s *authService) VerifySignupOTP(ctx context.Context, req *request.VerifySignupOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	return s.verifyOTP(ctx, NormalizeEmail(req.Email), req.OTP, entity.OTPPurposeSignup)
}

func (s *authService) RegisterFinalize(ctx context.Context, req *request.RegisterFinalizeRequest, userAgent, ip string) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	email := NormalizeEmail(req.OwnerEmail)

	// 2. The signup code must be verified and still match
	if err := s.checkConsumable(ctx, email, req.OTP, entity.OTPPurposeSignup); err != nil {
		return nil, err
	}

	// 3. Slug still free
	existingGym, err := s.repo.Gym.FindBySlug(ctx, req.GymSlug)
	if err != nil {
		s.log.Error("Failed to check slug", zap.Error(err), zap.String("slug", req.GymSlug))
		return nil, utils.ErrInternal("failed to check slug", err)
	}
	if existingGym != nil {
		return nil, utils.ErrConflict("gym slug already taken")
	}

	// 4. Email still unregistered
	existingAdmin, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, utils.ErrInternal("failed to check email", err)
	}
	if existingAdmin != nil {
		return nil, utils.ErrConflict("email already registered")
	}

	// 5. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, utils.ErrInternal("failed to process password", err)
	}

	// 6. Create gym + owner admin; the OTP is consumed in the same transaction
	now := time.Now()
	gym := &entity.Gym{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.GymName,
		Slug:        req.GymSlug,
		OwnerName:   req.OwnerName,
		OwnerEmail:  email,
		OwnerPhone:  req.OwnerPhone,
		TrialEndsAt: now.AddDate(0, 0, 15),
	}
	admin := &entity.AdminUser{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GymID:        gym.ID,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleOwner,
	}

	if err := s.repo.Gym.CreateWithOwner(ctx, gym, admin); err != nil {
		s.log.Error("Failed to create gym", zap.Error(err), zap.String("slug", gym.Slug))
		return nil, utils.ErrInternal("failed to create gym", err)
	}

	// 7. Auto login after registration
	session, err := s.createSession(ctx, admin, userAgent, ip)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("admin_id", admin.ID.String()))
		// Continue without session
	}

	s.log.Info("Gym registered",
		zap.String("gym_id", gym.ID.String()),
		zap.String("slug", gym.Slug),
		zap.String("email", email))

	return response.AuthToResponse(admin, gym, session), nil
}

func (s *authService) RegisterCancel(ctx context.Context, req *request.RegisterCancelRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	return s.cancelOTP(ctx, NormalizeEmail(req.Email))
}

func (s *authService) CheckSlug(ctx context.Context, req *request.CheckSlugRequest) (*response.SlugAvailability, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}
	if !utils.IsValidSlug(req.Slug) {
		return nil, utils.ErrValidation("slug must be lower-case letters, digits and hyphens")
	}

	gym, err := s.repo.Gym.FindBySlug(ctx, req.Slug)
	if err != nil {
		s.log.Error("Failed to check slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, utils.ErrInternal("failed to check slug", err)
	}

	return &response.SlugAvailability{Available: gym == nil}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	email := NormalizeEmail(req.Email)

	admin, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find admin", zap.Error(err), zap.String("email", email))
		return nil, utils.ErrInternal("failed to login", err)
	}
	// Unknown email and bad password are indistinguishable to the caller.
	if admin == nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, utils.ErrUnauthorized("invalid email or password")
	}

	gym, err := s.repo.Gym.FindByID(ctx, admin.GymID)
	if err != nil || gym == nil {
		s.log.Error("Failed to load gym for admin", zap.Error(err), zap.String("admin_id", admin.ID.String()))
		return nil, utils.ErrInternal("failed to login", err)
	}

	session, err := s.createSession(ctx, admin, userAgent, ip)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("admin_id", admin.ID.String()))
		return nil, utils.ErrInternal("failed to login", err)
	}

	s.log.Info("Admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("gym_id", gym.ID.String()))

	return response.AuthToResponse(admin, gym, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return utils.ErrInternal("failed to logout", err)
	}
	return nil
}

func (s *authService) ForgotPasswordSend(ctx context.Context, req *request.ForgotPasswordSendRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	email := NormalizeEmail(req.Email)

	admin, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return utils.ErrInternal("failed to process request", err)
	}
	// Report success for unknown addresses so the endpoint cannot be used to
	// probe which emails hold accounts.
	if admin == nil {
		s.log.Info("Password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	return s.issueOTP(ctx, email, entity.OTPPurposePasswordReset)
}

func (s *authService) ForgotPasswordVerify(ctx context.Context, req *request.ForgotPasswordVerifyRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	return s.verifyOTP(ctx, NormalizeEmail(req.Email), req.OTP, entity.OTPPurposePasswordReset)
}

func (s *authService) ForgotPasswordReset(ctx context.Context, req *request.ForgotPasswordResetRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	email := NormalizeEmail(req.Email)

	if err := s.checkConsumable(ctx, email, req.OTP, entity.OTPPurposePasswordReset); err != nil {
		return err
	}

	admin, err := s.repo.Admin.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find admin", zap.Error(err), zap.String("email", email))
		return utils.ErrInternal("failed to reset password", err)
	}
	if admin == nil {
		return utils.ErrNotFound("account not found")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return utils.ErrInternal("failed to process password", err)
	}

	// Updates the hash, consumes the OTP and revokes every session atomically.
	if err := s.repo.Admin.ResetPassword(ctx, admin.ID, hashedPassword, email); err != nil {
		s.log.Error("Failed to reset password", zap.Error(err), zap.String("admin_id", admin.ID.String()))
		return utils.ErrInternal("failed to reset password", err)
	}

	s.log.Info("Password reset", zap.String("admin_id", admin.ID.String()))

	go s.sendPasswordChangedNotice(admin)

	return nil
}

func (s *authService) ChangePassword(ctx context.Context, adminID string, req *request.ChangePasswordRequest, userAgent, ip string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return nil, utils.ErrValidation("password confirmation does not match")
	}

	id, err := utils.ParseUUID(adminID)
	if err != nil {
		return nil, utils.ErrUnauthorized("invalid session")
	}

	admin, err := s.repo.Admin.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find admin", zap.Error(err), zap.String("admin_id", adminID))
		return nil, utils.ErrInternal("failed to change password", err)
	}
	if admin == nil {
		return nil, utils.ErrUnauthorized("invalid session")
	}

	if !utils.CheckPasswordHash(req.OldPassword, admin.PasswordHash) {
		return nil, utils.ErrValidation("old password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, utils.ErrInternal("failed to process password", err)
	}

	if err := s.repo.Admin.UpdatePassword(ctx, admin.ID, hashedPassword); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("admin_id", adminID))
		return nil, utils.ErrInternal("failed to change password", err)
	}

	// Every existing session goes away; the caller gets a fresh token so the
	// current device stays logged in.
	if err := s.repo.Session.RevokeAllAdminSessions(ctx, admin.ID); err != nil {
		s.log.Error("Failed to revoke sessions", zap.Error(err), zap.String("admin_id", adminID))
		return nil, utils.ErrInternal("failed to change password", err)
	}

	gym, err := s.repo.Gym.FindByID(ctx, admin.GymID)
	if err != nil || gym == nil {
		s.log.Error("Failed to load gym for admin", zap.Error(err), zap.String("admin_id", adminID))
		return nil, utils.ErrInternal("failed to change password", err)
	}

	session, err := s.createSession(ctx, admin, userAgent, ip)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("admin_id", adminID))
		return nil, utils.ErrInternal("failed to change password", err)
	}

	s.log.Info("Password changed", zap.String("admin_id", adminID))

	go s.sendPasswordChangedNotice(admin)

	return response.AuthToResponse(admin, gym, session), nil
}

func (s *authService) createSession(ctx context.Context, admin *entity.AdminUser, userAgent, ip string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		AdminID:   admin.ID,
		GymID:     admin.GymID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// sendPasswordChangedNotice is best effort: a failed notice never fails the
// password operation.
func (s *authService) sendPasswordChangedNotice(admin *entity.AdminUser) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gymName := s.config.App.Name
	if gym, err := s.repo.Gym.FindByID(ctx, admin.GymID); err == nil && gym != nil {
		gymName = gym.Name
	}

	subject, body, err := mailer.PasswordChangedEmail(gymName, time.Now())
	if err != nil {
		s.log.Error("Failed to render password changed email", zap.Error(err))
		return
	}

	if err := s.mail.Send(ctx, admin.Email, subject, body); err != nil {
		s.log.Error("Failed to send password changed email",
			zap.Error(err), zap.String("email", admin.Email))
	}
}
