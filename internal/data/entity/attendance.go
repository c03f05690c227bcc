package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one visit. A record with a nil CheckOutTime is an open
// session; at most one open session may exist per member.
type Attendance struct {
	BaseSimple
	GymID        uuid.UUID  `db:"gym_id"`
	MemberID     uuid.UUID  `db:"member_id"`
	CheckInTime  time.Time  `db:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time"`
}
