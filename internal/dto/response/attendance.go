package response

import (
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/data/repository"
)

const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"
)

type AttendanceResponse struct {
	ID           string     `json:"id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

// ScanResponse is the discriminated result of an attendance scan.
type ScanResponse struct {
	Action     string             `json:"action"`
	Message    string             `json:"message"`
	Member     MemberSummary      `json:"member"`
	Attendance AttendanceResponse `json:"attendance"`
}

type AttendanceListItem struct {
	AttendanceResponse
	Member struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Phone         string    `json:"phone"`
		MembershipEnd time.Time `json:"membership_end"`
	} `json:"member"`
}

func AttendanceToResponse(a *entity.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID.String(),
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
	}
}

func AttendanceRowToListItem(row repository.AttendanceWithMember) AttendanceListItem {
	item := AttendanceListItem{
		AttendanceResponse: AttendanceToResponse(&row.Attendance),
	}
	item.Member.ID = row.Attendance.MemberID.String()
	item.Member.Name = row.MemberName
	item.Member.Phone = row.MemberPhone
	item.Member.MembershipEnd = row.MembershipEnd
	return item
}
