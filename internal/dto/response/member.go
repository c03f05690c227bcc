package response

import (
	"time"

	"gym-management/internal/data/entity"
)

type MemberResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	QRCode          string    `json:"qr_code"`
	IsActive        bool      `json:"is_active"`
	MembershipStart time.Time `json:"membership_start"`
	MembershipEnd   time.Time `json:"membership_end"`
	CreatedAt       time.Time `json:"created_at"`
}

type MemberSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type MemberDetailResponse struct {
	Member     MemberResponse       `json:"member"`
	Attendance []AttendanceResponse `json:"attendance"`
}

func MemberToResponse(member *entity.Member) MemberResponse {
	return MemberResponse{
		ID:              member.ID.String(),
		Name:            member.Name,
		Phone:           member.Phone,
		QRCode:          member.QRCode,
		IsActive:        member.IsActive,
		MembershipStart: member.MembershipStart,
		MembershipEnd:   member.MembershipEnd,
		CreatedAt:       member.CreatedAt,
	}
}

func MemberToSummary(member *entity.Member) MemberSummary {
	return MemberSummary{
		ID:    member.ID.String(),
		Name:  member.Name,
		Phone: member.Phone,
	}
}
