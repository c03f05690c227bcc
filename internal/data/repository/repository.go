package repository

import (
	"gym-management/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Gym         GymRepository
	Admin       AdminRepository
	Session     SessionRepository
	Member      MemberRepository
	Attendance  AttendanceRepository
	OTP         OTPRepository
	ReminderLog ReminderLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Gym:         NewGymRepository(db, log),
		Admin:       NewAdminRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Member:      NewMemberRepository(db, log),
		Attendance:  NewAttendanceRepository(db, log),
		OTP:         NewOTPRepository(db, log),
		ReminderLog: NewReminderLogRepository(db, log),
	}
}
