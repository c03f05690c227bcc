package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestSignupOTPEmail(t *testing.T) {
	subject, body, err := SignupOTPEmail("GymApp", "new@example.com", "123456", 10)
	if err != nil {
		t.Fatalf("SignupOTPEmail: %v", err)
	}

	if !strings.Contains(subject, "GymApp") {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "123456") {
		t.Error("body must carry the code")
	}
	if !strings.Contains(body, "10 minutes") {
		t.Error("body must state the expiry")
	}
	if !strings.Contains(body, "new@example.com") {
		t.Error("body must name the recipient")
	}
}

func TestPasswordResetOTPEmail(t *testing.T) {
	_, body, err := PasswordResetOTPEmail("GymApp", "654321", 10)
	if err != nil {
		t.Fatalf("PasswordResetOTPEmail: %v", err)
	}
	if !strings.Contains(body, "654321") {
		t.Error("body must carry the code")
	}
}

func TestExpiryReminderEmail(t *testing.T) {
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	subject, body, err := ExpiryReminderEmail("Iron Temple",
		[]ReminderMember{{Name: "Ravi", Phone: "9000000001", MembershipEnd: end}},
		[]ReminderMember{{Name: "Asha", Phone: "9000000002", MembershipEnd: end.AddDate(0, 0, 2)}},
	)
	if err != nil {
		t.Fatalf("ExpiryReminderEmail: %v", err)
	}

	if !strings.Contains(subject, "Iron Temple") {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Ravi", "Asha", "Expiring today", "Expiring soon", "01 Sep 2026"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestExpiryReminderEmailOmitsEmptySections(t *testing.T) {
	_, body, err := ExpiryReminderEmail("Iron Temple", nil,
		[]ReminderMember{{Name: "Asha", Phone: "9000000002", MembershipEnd: time.Now()}})
	if err != nil {
		t.Fatalf("ExpiryReminderEmail: %v", err)
	}
	if strings.Contains(body, "Expiring today") {
		t.Error("empty section must be omitted")
	}
}
