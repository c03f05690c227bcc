package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/dto/request"
	"gym-management/internal/dto/response"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
)

func TestScanTogglesBetweenCheckInAndCheckOut(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewAttendanceService(store.repo(), testLogger())

	req := &request.ScanRequest{QRCode: "GYMQR:" + member.QRCode}

	first, err := svc.Scan(context.Background(), gym.ID, req)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if first.Action != response.ActionCheckIn {
		t.Fatalf("first scan action = %s", first.Action)
	}
	if first.Attendance.CheckOutTime != nil {
		t.Error("fresh check-in must have no check-out time")
	}

	second, err := svc.Scan(context.Background(), gym.ID, req)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.Action != response.ActionCheckOut {
		t.Fatalf("second scan action = %s", second.Action)
	}
	if second.Attendance.CheckOutTime == nil {
		t.Error("check-out must set the check-out time")
	}
	if second.Attendance.ID != first.Attendance.ID {
		t.Error("check-out must close the session opened by the first scan")
	}

	third, err := svc.Scan(context.Background(), gym.ID, req)
	if err != nil {
		t.Fatalf("third scan: %v", err)
	}
	if third.Action != response.ActionCheckIn {
		t.Fatalf("third scan action = %s", third.Action)
	}
	if third.Attendance.ID == first.Attendance.ID {
		t.Error("a new visit must open a new record")
	}
}

func TestScanAcceptsBareCode(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewAttendanceService(store.repo(), testLogger())

	resp, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: member.QRCode})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if resp.Member.ID != member.ID.String() {
		t.Error("bare scan code must resolve the same member")
	}
}

func TestScanRejectsMalformedCode(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	svc := NewAttendanceService(store.repo(), testLogger())

	_, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: "GYMQR:not-a-uuid"})
	wantCode(t, err, utils.CodeValidation)
}

func TestScanUnknownCode(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	svc := NewAttendanceService(store.repo(), testLogger())

	_, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: "00000000-0000-0000-0000-000000000001"})
	wantCode(t, err, utils.CodeNotFound)
}

func TestScanEnforcesTenantIsolation(t *testing.T) {
	store := newFakeStore()
	home := seedGym(store, "iron-temple")
	other := seedGym(store, "steel-works")
	member := seedMember(store, home, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewAttendanceService(store.repo(), testLogger())

	// Scanning a valid code at the wrong gym reads as not found, never as a
	// cross-tenant hit.
	_, err := svc.Scan(context.Background(), other.ID, &request.ScanRequest{QRCode: member.QRCode})
	wantCode(t, err, utils.CodeNotFound)
}

func TestScanRejectsInactiveMember(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	member.IsActive = false
	svc := NewAttendanceService(store.repo(), testLogger())

	_, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: member.QRCode})
	wantCode(t, err, utils.CodeForbidden)
}

func TestScanMembershipExpiryIsDayGranular(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	svc := NewAttendanceService(store.repo(), testLogger())

	// Ends earlier today: still admitted.
	today := seedMember(store, gym, "Today", utils.StartOfDay(time.Now()))
	if _, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: today.QRCode}); err != nil {
		t.Fatalf("membership ending today must still admit: %v", err)
	}

	// Ended yesterday: rejected.
	yesterday := seedMember(store, gym, "Yesterday", time.Now().AddDate(0, 0, -1))
	_, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: yesterday.QRCode})
	wantCode(t, err, utils.CodeForbidden)
}

func TestConcurrentScansKeepOneOpenSession(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewAttendanceService(store.repo(), testLogger())

	const scans = 8
	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: member.QRCode}); err != nil {
				t.Errorf("Scan: %v", err)
			}
		}()
	}
	wg.Wait()

	open := 0
	for _, record := range store.attendance {
		if record.CheckOutTime == nil {
			open++
		}
	}
	if open > 1 {
		t.Fatalf("at most one open session may exist, found %d", open)
	}
}

func TestAttendanceListFiltersByDay(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewAttendanceService(store.repo(), testLogger())

	// One visit today, one last week.
	if _, err := svc.Scan(context.Background(), gym.ID, &request.ScanRequest{QRCode: member.QRCode}); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	lastWeek := time.Now().AddDate(0, 0, -7)
	out := lastWeek.Add(time.Hour)
	store.attendance = append(store.attendance, &entity.Attendance{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: lastWeek},
		GymID:        gym.ID,
		MemberID:     member.ID,
		CheckInTime:  lastWeek,
		CheckOutTime: &out,
	})

	today := time.Now().Format("2006-01-02")
	resp, err := svc.List(context.Background(), gym.ID, today, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Pagination.Total != 1 {
		t.Fatalf("expected 1 record for today, got %d", resp.Pagination.Total)
	}
	if resp.Data[0].Member.Name != "Ravi" {
		t.Errorf("member name = %s", resp.Data[0].Member.Name)
	}

	all, err := svc.List(context.Background(), gym.ID, "", 1, 20)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if all.Pagination.Total < 2 {
		t.Fatalf("expected both records without a date filter, got %d", all.Pagination.Total)
	}

	_, bad := svc.List(context.Background(), gym.ID, "13-01-2026", 1, 20)
	wantCode(t, bad, utils.CodeValidation)
}
