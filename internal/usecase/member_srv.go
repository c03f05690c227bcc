package usecase

import (
	"context"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/data/repository"
	"gym-management/internal/dto/request"
	"gym-management/internal/dto/response"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const membershipDateLayout = "2006-01-02"

type MemberService interface {
	List(ctx context.Context, gymID uuid.UUID, query *request.ListMembersQuery) (*response.PaginatedResponse[response.MemberResponse], error)
	Create(ctx context.Context, gymID uuid.UUID, req *request.CreateMemberRequest) (*response.MemberResponse, error)
	Get(ctx context.Context, gymID uuid.UUID, memberID string) (*response.MemberDetailResponse, error)
	Update(ctx context.Context, gymID uuid.UUID, memberID string, req *request.UpdateMemberRequest) (*response.MemberResponse, error)
	Delete(ctx context.Context, gymID uuid.UUID, memberID string) error
	Renew(ctx context.Context, gymID uuid.UUID, memberID string, req *request.RenewMemberRequest) (*response.MemberResponse, error)
	Attendance(ctx context.Context, gymID uuid.UUID, memberID string) ([]response.AttendanceResponse, error)
}

type memberService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMemberService(repo *repository.Repository, log *zap.Logger) MemberService {
	return &memberService{
		repo: repo,
		log:  log,
	}
}

func (s *memberService) List(ctx context.Context, gymID uuid.UUID, query *request.ListMembersQuery) (*response.PaginatedResponse[response.MemberResponse], error) {
	// Set defaults
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}
	switch query.Status {
	case "active", "expired":
	default:
		query.Status = "all"
	}

	filter := repository.MemberFilter{
		Search: query.Search,
		Status: query.Status,
		Today:  utils.StartOfDay(time.Now()),
		Limit:  query.PageSize,
		Offset: utils.CalculateOffset(query.Page, query.PageSize),
	}

	members, err := s.repo.Member.List(ctx, gymID, filter)
	if err != nil {
		s.log.Error("Failed to list members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to list members", err)
	}

	total, err := s.repo.Member.Count(ctx, gymID, filter)
	if err != nil {
		s.log.Error("Failed to count members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to count members", err)
	}

	memberResponses := make([]response.MemberResponse, len(members))
	for i := range members {
		memberResponses[i] = response.MemberToResponse(&members[i])
	}

	return response.NewPaginatedResponse(memberResponses, query.Page, query.PageSize, total), nil
}

func (s *memberService) Create(ctx context.Context, gymID uuid.UUID, req *request.CreateMemberRequest) (*response.MemberResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	start, err := time.ParseInLocation(membershipDateLayout, req.MembershipStart, time.Local)
	if err != nil {
		return nil, utils.ErrValidation("membership_start must be a YYYY-MM-DD date")
	}
	end, err := time.ParseInLocation(membershipDateLayout, req.MembershipEnd, time.Local)
	if err != nil {
		return nil, utils.ErrValidation("membership_end must be a YYYY-MM-DD date")
	}
	if end.Before(start) {
		return nil, utils.ErrValidation("membership_end must not be before membership_start")
	}

	now := time.Now()
	member := &entity.Member{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GymID:           gymID,
		Name:            req.Name,
		Phone:           req.Phone,
		QRCode:          utils.GenerateScanCode(),
		IsActive:        true,
		MembershipStart: start,
		MembershipEnd:   end,
	}

	if err := s.repo.Member.Create(ctx, member); err != nil {
		s.log.Error("Failed to create member", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to create member", err)
	}

	s.log.Info("Member created",
		zap.String("member_id", member.ID.String()),
		zap.String("gym_id", gymID.String()))

	resp := response.MemberToResponse(member)
	return &resp, nil
}

func (s *memberService) Get(ctx context.Context, gymID uuid.UUID, memberID string) (*response.MemberDetailResponse, error) {
	member, err := s.findMember(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByMember(ctx, gymID, member.ID, 10)
	if err != nil {
		s.log.Error("Failed to load attendance", zap.Error(err), zap.String("member_id", memberID))
		return nil, utils.ErrInternal("failed to load attendance", err)
	}

	attendance := make([]response.AttendanceResponse, len(records))
	for i := range records {
		attendance[i] = response.AttendanceToResponse(&records[i])
	}

	return &response.MemberDetailResponse{
		Member:     response.MemberToResponse(member),
		Attendance: attendance,
	}, nil
}

func (s *memberService) Update(ctx context.Context, gymID uuid.UUID, memberID string, req *request.UpdateMemberRequest) (*response.MemberResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	member, err := s.findMember(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.MembershipStart != nil {
		start, err := time.ParseInLocation(membershipDateLayout, *req.MembershipStart, time.Local)
		if err != nil {
			return nil, utils.ErrValidation("membership_start must be a YYYY-MM-DD date")
		}
		member.MembershipStart = start
	}
	if req.MembershipEnd != nil {
		end, err := time.ParseInLocation(membershipDateLayout, *req.MembershipEnd, time.Local)
		if err != nil {
			return nil, utils.ErrValidation("membership_end must be a YYYY-MM-DD date")
		}
		member.MembershipEnd = end
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.UpdatedAt = time.Now()

	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.log.Error("Failed to update member", zap.Error(err), zap.String("member_id", memberID))
		return nil, utils.ErrInternal("failed to update member", err)
	}

	resp := response.MemberToResponse(member)
	return &resp, nil
}

func (s *memberService) Delete(ctx context.Context, gymID uuid.UUID, memberID string) error {
	member, err := s.findMember(ctx, gymID, memberID)
	if err != nil {
		return err
	}

	if err := s.repo.Member.Delete(ctx, gymID, member.ID); err != nil {
		s.log.Error("Failed to delete member", zap.Error(err), zap.String("member_id", memberID))
		return utils.ErrInternal("failed to delete member", err)
	}

	s.log.Info("Member deleted",
		zap.String("member_id", member.ID.String()),
		zap.String("gym_id", gymID.String()))

	return nil
}

func (s *memberService) Renew(ctx context.Context, gymID uuid.UUID, memberID string, req *request.RenewMemberRequest) (*response.MemberResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrValidation(utils.FormatValidationErrors(errs))
	}

	member, err := s.findMember(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}

	member.MembershipEnd = member.MembershipEnd.AddDate(0, req.Months, 0)
	member.UpdatedAt = time.Now()

	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.log.Error("Failed to renew member", zap.Error(err), zap.String("member_id", memberID))
		return nil, utils.ErrInternal("failed to renew member", err)
	}

	s.log.Info("Membership renewed",
		zap.String("member_id", member.ID.String()),
		zap.Int("months", req.Months),
		zap.Time("membership_end", member.MembershipEnd))

	resp := response.MemberToResponse(member)
	return &resp, nil
}

func (s *memberService) Attendance(ctx context.Context, gymID uuid.UUID, memberID string) ([]response.AttendanceResponse, error) {
	member, err := s.findMember(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByMember(ctx, gymID, member.ID, 30)
	if err != nil {
		s.log.Error("Failed to load attendance", zap.Error(err), zap.String("member_id", memberID))
		return nil, utils.ErrInternal("failed to load attendance", err)
	}

	attendance := make([]response.AttendanceResponse, len(records))
	for i := range records {
		attendance[i] = response.AttendanceToResponse(&records[i])
	}

	return attendance, nil
}

// findMember resolves an ID within the calling gym. Members of other gyms
// read as not found, never as forbidden.
func (s *memberService) findMember(ctx context.Context, gymID uuid.UUID, memberID string) (*entity.Member, error) {
	id, err := utils.ParseUUID(memberID)
	if err != nil {
		return nil, utils.ErrValidation("invalid member ID")
	}

	member, err := s.repo.Member.FindByID(ctx, gymID, id)
	if err != nil {
		s.log.Error("Failed to find member", zap.Error(err), zap.String("member_id", memberID))
		return nil, utils.ErrInternal("failed to find member", err)
	}
	if member == nil {
		return nil, utils.ErrNotFound("member not found")
	}

	return member, nil
}
