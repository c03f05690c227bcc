package utils

import (
	"strconv"
	"testing"
)

func TestGenerateOTPStaysInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateOTP(6)
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("length = %d (%s)", len(code), code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %s", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestGenerateOTPDefaultsBadLength(t *testing.T) {
	for _, length := range []int{0, -1, 10} {
		code, err := GenerateOTP(length)
		if err != nil {
			t.Fatalf("GenerateOTP(%d): %v", length, err)
		}
		if len(code) != 6 {
			t.Errorf("GenerateOTP(%d) length = %d", length, len(code))
		}
	}
}

func TestHashOTPIsStable(t *testing.T) {
	if HashOTP("123456") != HashOTP("123456") {
		t.Error("same code must hash identically")
	}
	if HashOTP("123456") == HashOTP("123457") {
		t.Error("different codes must hash differently")
	}
	if len(HashOTP("123456")) != 64 {
		t.Error("expected hex-encoded sha256")
	}
}

func TestOTPEqual(t *testing.T) {
	hash := HashOTP("123456")
	if !OTPEqual("123456", hash) {
		t.Error("matching code must compare equal")
	}
	if OTPEqual("654321", hash) {
		t.Error("wrong code must not compare equal")
	}
	if OTPEqual("123456", "not-a-hash") {
		t.Error("garbage hash must not compare equal")
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"gym", "iron-temple", "a1-b2-c3", "x"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("%q must be a valid slug", s)
		}
	}

	invalid := []string{"", "Iron-Temple", "iron_temple", "-gym", "gym-", "iron--temple", "iron temple"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("%q must not be a valid slug", s)
		}
	}
}
