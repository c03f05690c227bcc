package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateScanCode mints the opaque per-member identifier encoded in QR codes.
func GenerateScanCode() string {
	return uuid.New().String()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== OTP ====================

// GenerateOTP creates a numeric one-time code of the given length from a
// cryptographically strong source. For length 6 the result is uniform-ish
// over [100000, 999999].
func GenerateOTP(length int) (string, error) {
	if length <= 0 || length > 9 {
		length = 6
	}

	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	low := uint32(math.Pow10(length - 1))
	span := uint32(9 * math.Pow10(length-1))
	n := binary.BigEndian.Uint32(b[:])%span + low

	return fmt.Sprintf("%0*d", length, n), nil
}

// HashOTP returns the hex-encoded SHA-256 of a code. Codes are never stored
// in plaintext.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// OTPEqual compares a submitted code against a stored hash in constant time.
func OTPEqual(code, storedHash string) bool {
	submitted := HashOTP(code)
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(storedHash)) == 1
}
