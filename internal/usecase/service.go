package usecase

import (
	"gym-management/internal/data/repository"
	"gym-management/pkg/mailer"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

// Service groups every use case behind one wiring point.
type Service struct {
	Auth       AuthService
	Member     MemberService
	Attendance AttendanceService
	Gym        GymService
	Reminder   ReminderService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, mail, log),
		Member:     NewMemberService(repo, log),
		Attendance: NewAttendanceService(repo, log),
		Gym:        NewGymService(repo, log),
		Reminder:   NewReminderService(repo, config, mail, log),
	}
}
