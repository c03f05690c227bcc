package entity

import "github.com/google/uuid"

type AdminRole string

const (
	RoleOwner AdminRole = "owner"
	RoleStaff AdminRole = "staff"
)

type AdminUser struct {
	Base
	GymID        uuid.UUID `db:"gym_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         AdminRole `db:"role"`
}
