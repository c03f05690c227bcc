package entity

import "time"

// Gym is a tenant. Members, attendance records and admin accounts always
// belong to exactly one gym and are never visible across tenants.
type Gym struct {
	Base
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	OwnerName   string    `db:"owner_name"`
	OwnerEmail  string    `db:"owner_email"`
	OwnerPhone  string    `db:"owner_phone"`
	TrialEndsAt time.Time `db:"trial_ends_at"`
}
