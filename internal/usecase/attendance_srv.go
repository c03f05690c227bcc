package usecase

import (
	"context"
	"strings"
	"time"

	"gym-management/internal/data/repository"
	"gym-management/internal/dto/request"
	"gym-management/internal/dto/response"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// qrCodePrefix is the literal prefix member QR cards carry in front of the
// scan code.
const qrCodePrefix = "GYMQR:"

type AttendanceService interface {
	Scan(ctx context.Context, gymID uuid.UUID, req *request.ScanRequest) (*response.ScanResponse, error)
	List(ctx context.Context, gymID uuid.UUID, date string, page, pageSize int) (*response.PaginatedResponse[response.AttendanceListItem], error)
}

type attendanceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAttendanceService(repo *repository.Repository, log *zap.Logger) AttendanceService {
	return &attendanceService{
		repo: repo,
		log:  log,
	}
}

func (s *attendanceService) Scan(ctx context.Context, gymID uuid.UUID, req *request.ScanRequest) (*response.ScanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	code := strings.TrimSpace(strings.TrimPrefix(req.QRCode, qrCodePrefix))
	if _, err := utils.ParseUUID(code); err != nil {
		return nil, utils.ErrValidation("invalid QR code")
	}

	member, err := s.repo.Member.FindByQRCode(ctx, gymID, code)
	if err != nil {
		s.log.Error("Failed to look up QR code", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to look up member", err)
	}
	if member == nil {
		return nil, utils.ErrNotFound("member not found")
	}

	if !member.IsActive {
		return nil, utils.ErrForbidden("membership is inactive")
	}

	now := time.Now()
	// Expiry is a day-granular comparison: a membership ending today still
	// admits the member.
	if utils.StartOfDay(member.MembershipEnd).Before(utils.StartOfDay(now)) {
		return nil, utils.ErrForbidden("membership has expired")
	}

	record, checkedOut, err := s.repo.Attendance.Toggle(ctx, gymID, member.ID, now)
	if err != nil {
		s.log.Error("Failed to toggle attendance",
			zap.Error(err), zap.String("member_id", member.ID.String()))
		return nil, utils.ErrInternal("failed to record attendance", err)
	}

	action := response.ActionCheckIn
	message := member.Name + " checked in"
	if checkedOut {
		action = response.ActionCheckOut
		message = member.Name + " checked out"
	}

	s.log.Info("Attendance recorded",
		zap.String("member_id", member.ID.String()),
		zap.String("gym_id", gymID.String()),
		zap.String("action", action))

	return &response.ScanResponse{
		Action:     action,
		Message:    message,
		Member:     response.MemberToSummary(member),
		Attendance: response.AttendanceToResponse(record),
	}, nil
}

func (s *attendanceService) List(ctx context.Context, gymID uuid.UUID, date string, page, pageSize int) (*response.PaginatedResponse[response.AttendanceListItem], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var day *time.Time
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, utils.ErrValidation("date must be a YYYY-MM-DD date")
		}
		day = &parsed
	}

	rows, err := s.repo.Attendance.ListByGym(ctx, gymID, day, pageSize, utils.CalculateOffset(page, pageSize))
	if err != nil {
		s.log.Error("Failed to list attendance", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to list attendance", err)
	}

	total, err := s.repo.Attendance.CountByGym(ctx, gymID, day)
	if err != nil {
		s.log.Error("Failed to count attendance", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to count attendance", err)
	}

	items := make([]response.AttendanceListItem, len(rows))
	for i, row := range rows {
		items[i] = response.AttendanceRowToListItem(row)
	}

	return response.NewPaginatedResponse(items, page, pageSize, total), nil
}
