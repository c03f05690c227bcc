package usecase

import (
	"context"
	"time"

	"gym-management/internal/data/repository"
	"gym-management/internal/dto/request"
	"gym-management/internal/dto/response"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// expiringSoonDays is the dashboard's look-ahead for memberships about to
// lapse.
const expiringSoonDays = 7

type GymService interface {
	Settings(ctx context.Context, gymID uuid.UUID) (*response.GymSettings, error)
	UpdateSettings(ctx context.Context, gymID uuid.UUID, req *request.UpdateGymRequest) (*response.GymSettings, error)
	AdminProfile(ctx context.Context, adminID uuid.UUID) (*response.AdminProfile, error)
	DashboardStats(ctx context.Context, gymID uuid.UUID) (*response.DashboardStats, error)
}

type gymService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGymService(repo *repository.Repository, log *zap.Logger) GymService {
	return &gymService{
		repo: repo,
		log:  log,
	}
}

func (s *gymService) Settings(ctx context.Context, gymID uuid.UUID) (*response.GymSettings, error) {
	gym, err := s.repo.Gym.FindByID(ctx, gymID)
	if err != nil {
		s.log.Error("Failed to find gym", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load gym", err)
	}
	if gym == nil {
		return nil, utils.ErrNotFound("gym not found")
	}

	settings := response.GymToSettings(gym)
	return &settings, nil
}

func (s *gymService) UpdateSettings(ctx context.Context, gymID uuid.UUID, req *request.UpdateGymRequest) (*response.GymSettings, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	gym, err := s.repo.Gym.FindByID(ctx, gymID)
	if err != nil {
		s.log.Error("Failed to find gym", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load gym", err)
	}
	if gym == nil {
		return nil, utils.ErrNotFound("gym not found")
	}

	// A slug change must not collide with another tenant.
	if req.GymSlug != gym.Slug {
		existing, err := s.repo.Gym.FindBySlug(ctx, req.GymSlug)
		if err != nil {
			s.log.Error("Failed to check slug", zap.Error(err), zap.String("slug", req.GymSlug))
			return nil, utils.ErrInternal("failed to check slug", err)
		}
		if existing != nil {
			return nil, utils.ErrConflict("gym slug already taken")
		}
	}

	gym.Name = req.GymName
	gym.Slug = req.GymSlug
	gym.OwnerName = req.OwnerName
	gym.OwnerEmail = NormalizeEmail(req.OwnerEmail)
	gym.OwnerPhone = req.OwnerPhone
	gym.UpdatedAt = time.Now()

	if err := s.repo.Gym.Update(ctx, gym); err != nil {
		s.log.Error("Failed to update gym", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to update gym", err)
	}

	s.log.Info("Gym settings updated", zap.String("gym_id", gymID.String()))

	settings := response.GymToSettings(gym)
	return &settings, nil
}

func (s *gymService) AdminProfile(ctx context.Context, adminID uuid.UUID) (*response.AdminProfile, error) {
	admin, err := s.repo.Admin.FindByID(ctx, adminID)
	if err != nil {
		s.log.Error("Failed to find admin", zap.Error(err), zap.String("admin_id", adminID.String()))
		return nil, utils.ErrInternal("failed to load profile", err)
	}
	if admin == nil {
		return nil, utils.ErrUnauthorized("invalid session")
	}

	gym, err := s.repo.Gym.FindByID(ctx, admin.GymID)
	if err != nil || gym == nil {
		s.log.Error("Failed to load gym for admin", zap.Error(err), zap.String("admin_id", adminID.String()))
		return nil, utils.ErrInternal("failed to load profile", err)
	}

	return &response.AdminProfile{
		ID:    admin.ID.String(),
		Email: admin.Email,
		Role:  admin.Role,
		Gym:   response.GymToSummary(gym),
	}, nil
}

func (s *gymService) DashboardStats(ctx context.Context, gymID uuid.UUID) (*response.DashboardStats, error) {
	today := utils.StartOfDay(time.Now())

	total, err := s.repo.Member.CountByGym(ctx, gymID)
	if err != nil {
		s.log.Error("Failed to count members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load stats", err)
	}

	active, err := s.repo.Member.CountActive(ctx, gymID, today)
	if err != nil {
		s.log.Error("Failed to count active members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load stats", err)
	}

	expiring, err := s.repo.Member.CountExpiringBetween(ctx, gymID, today, utils.EndOfDay(today.AddDate(0, 0, expiringSoonDays)))
	if err != nil {
		s.log.Error("Failed to count expiring members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load stats", err)
	}

	checkIns, err := s.repo.Attendance.CountCheckInsBetween(ctx, gymID, today, utils.EndOfDay(today))
	if err != nil {
		s.log.Error("Failed to count check-ins", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load stats", err)
	}

	return &response.DashboardStats{
		TotalMembers:  total,
		ActiveMembers: active,
		ExpiringSoon:  expiring,
		TodayCheckIns: checkIns,
	}, nil
}
