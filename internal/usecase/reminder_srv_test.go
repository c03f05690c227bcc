package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"gym-management/pkg/utils"
)

func TestReminderRunGroupsByGym(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := NewReminderService(store.repo(), testConfig(), mail, testLogger())

	gymA := seedGym(store, "iron-temple")
	gymB := seedGym(store, "steel-works")

	endingToday := utils.StartOfDay(time.Now()).Add(12 * time.Hour)
	seedMember(store, gymA, "Ends Today", endingToday)
	seedMember(store, gymA, "Ends Soon", time.Now().AddDate(0, 0, 2))
	seedMember(store, gymB, "Also Soon", time.Now().AddDate(0, 0, 3))
	// Outside the window and inactive members stay out of the digests.
	seedMember(store, gymA, "Far Future", time.Now().AddDate(0, 2, 0))
	lapsed := seedMember(store, gymB, "Inactive", time.Now().AddDate(0, 0, 1))
	lapsed.IsActive = false

	resp, err := svc.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if resp.TotalGyms != 2 {
		t.Fatalf("total gyms = %d", resp.TotalGyms)
	}
	if resp.TotalMembers != 3 {
		t.Fatalf("total members = %d", resp.TotalMembers)
	}
	if resp.EmailsSent != 2 || resp.EmailsFailed != 0 {
		t.Fatalf("sent=%d failed=%d", resp.EmailsSent, resp.EmailsFailed)
	}
	if !resp.Manual {
		t.Error("manual flag must be carried through")
	}

	for _, result := range resp.Results {
		switch result.GymName {
		case gymA.Name:
			if result.ExpiredToday != 1 || result.ExpiringSoon != 1 {
				t.Errorf("gym A split = today:%d soon:%d", result.ExpiredToday, result.ExpiringSoon)
			}
			if result.OwnerEmail != gymA.OwnerEmail {
				t.Errorf("gym A owner email = %s", result.OwnerEmail)
			}
		case gymB.Name:
			if result.ExpiredToday != 0 || result.ExpiringSoon != 1 {
				t.Errorf("gym B split = today:%d soon:%d", result.ExpiredToday, result.ExpiringSoon)
			}
		default:
			t.Errorf("unexpected gym in results: %s", result.GymName)
		}
	}

	if mail.sentCount() != 2 {
		t.Fatalf("expected 2 digests, got %d", mail.sentCount())
	}
	for _, sent := range mail.sent {
		if sent.To == gymA.OwnerEmail && !strings.Contains(sent.Body, "Ends Today") {
			t.Error("gym A digest must list the member expiring today")
		}
		if strings.Contains(sent.Body, "Far Future") {
			t.Error("members outside the window must not appear")
		}
	}
}

func TestReminderRunWritesAuditLog(t *testing.T) {
	store := newFakeStore()
	svc := NewReminderService(store.repo(), testConfig(), &fakeMailer{}, testLogger())

	gym := seedGym(store, "iron-temple")
	seedMember(store, gym, "Ends Soon", time.Now().AddDate(0, 0, 1))

	if _, err := svc.Run(context.Background(), false); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(store.runs) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(store.runs))
	}
	entry := store.runs[0]
	if entry.Manual {
		t.Error("scheduled run must not be flagged manual")
	}
	if entry.GymsProcessed != 1 || entry.EmailsSent != 1 || entry.EmailsFailed != 0 {
		t.Errorf("counters = gyms:%d sent:%d failed:%d",
			entry.GymsProcessed, entry.EmailsSent, entry.EmailsFailed)
	}
}

func TestReminderRunCountsMailFailures(t *testing.T) {
	store := newFakeStore()
	svc := NewReminderService(store.repo(), testConfig(), &fakeMailer{fail: true}, testLogger())

	gym := seedGym(store, "iron-temple")
	seedMember(store, gym, "Ends Soon", time.Now().AddDate(0, 0, 1))

	resp, err := svc.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("a per-gym mail failure must not fail the run: %v", err)
	}

	if resp.EmailsFailed != 1 || resp.EmailsSent != 0 {
		t.Fatalf("sent=%d failed=%d", resp.EmailsSent, resp.EmailsFailed)
	}
	if resp.Results[0].Success {
		t.Error("failed gym must not read as success")
	}
	if resp.Results[0].Error == "" {
		t.Error("failed gym must carry the error")
	}
	if len(store.runs) != 1 {
		t.Error("the run must still be logged")
	}
}

func TestReminderRunWithNothingExpiring(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := NewReminderService(store.repo(), testConfig(), mail, testLogger())

	seedGym(store, "iron-temple")

	resp, err := svc.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resp.TotalGyms != 0 || mail.sentCount() != 0 {
		t.Error("an empty window must send nothing")
	}
}

func TestReminderStatus(t *testing.T) {
	store := newFakeStore()
	svc := NewReminderService(store.repo(), testConfig(), &fakeMailer{}, testLogger())

	gym := seedGym(store, "iron-temple")
	other := seedGym(store, "steel-works")
	seedMember(store, gym, "Ends Today", utils.StartOfDay(time.Now()).Add(time.Hour))
	seedMember(store, gym, "Ends Soon", time.Now().AddDate(0, 0, 2))
	seedMember(store, other, "Other Gym", time.Now().AddDate(0, 0, 2))

	if _, err := svc.Run(context.Background(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}

	status, err := svc.Status(context.Background(), gym.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if status.ExpiringSoonCount != 2 {
		t.Errorf("expiring soon = %d", status.ExpiringSoonCount)
	}
	if status.ExpiredTodayCount != 1 {
		t.Errorf("expired today = %d", status.ExpiredTodayCount)
	}
	if status.LastRunAt == nil {
		t.Fatal("last run must be reported")
	}
	if !status.LastRunManual {
		t.Error("last run manual flag must be carried")
	}
}
