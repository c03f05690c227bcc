package entity

import "time"

type OTPPurpose string

const (
	OTPPurposeSignup        OTPPurpose = "signup_verification"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTP is a pending one-time code, keyed by normalized email: one record per
// email at a time. CodeHash is the hex SHA-256 of the 6-digit code; plaintext
// codes are never persisted.
type OTP struct {
	BaseSimple
	Email     string     `db:"email"`
	CodeHash  string     `db:"code_hash"`
	Purpose   OTPPurpose `db:"purpose"`
	ExpiresAt time.Time  `db:"expires_at"`
	Verified  bool       `db:"verified"`
}
