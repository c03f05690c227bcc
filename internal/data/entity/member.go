package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member holds one gym membership. QRCode is the opaque identifier encoded
// in the member's QR card, unique within the gym.
type Member struct {
	Base
	GymID           uuid.UUID `db:"gym_id"`
	Name            string    `db:"name"`
	Phone           string    `db:"phone"`
	QRCode          string    `db:"qr_code"`
	IsActive        bool      `db:"is_active"`
	MembershipStart time.Time `db:"membership_start"`
	MembershipEnd   time.Time `db:"membership_end"`
}
