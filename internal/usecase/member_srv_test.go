package usecase

import (
	"context"
	"testing"
	"time"

	"gym-management/internal/dto/request"
	"gym-management/pkg/utils"
)

func TestCreateMember(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	svc := NewMemberService(store.repo(), testLogger())

	resp, err := svc.Create(context.Background(), gym.ID, &request.CreateMemberRequest{
		Name:            "Ravi",
		Phone:           "9000000001",
		MembershipStart: "2026-08-01",
		MembershipEnd:   "2026-09-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.QRCode == "" {
		t.Error("a scan code must be minted")
	}
	if !resp.IsActive {
		t.Error("new members start active")
	}
	if _, err := utils.ParseUUID(resp.QRCode); err != nil {
		t.Errorf("scan code must be a UUID: %v", err)
	}
}

func TestCreateMemberRejectsBadDates(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	svc := NewMemberService(store.repo(), testLogger())

	_, malformed := svc.Create(context.Background(), gym.ID, &request.CreateMemberRequest{
		Name:            "Ravi",
		Phone:           "9000000001",
		MembershipStart: "01/08/2026",
		MembershipEnd:   "2026-09-01",
	})
	wantCode(t, malformed, utils.CodeValidation)

	_, inverted := svc.Create(context.Background(), gym.ID, &request.CreateMemberRequest{
		Name:            "Ravi",
		Phone:           "9000000001",
		MembershipStart: "2026-09-01",
		MembershipEnd:   "2026-08-01",
	})
	wantCode(t, inverted, utils.CodeValidation)
}

func TestGetMemberScopedToGym(t *testing.T) {
	store := newFakeStore()
	home := seedGym(store, "iron-temple")
	other := seedGym(store, "steel-works")
	member := seedMember(store, home, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewMemberService(store.repo(), testLogger())

	if _, err := svc.Get(context.Background(), home.ID, member.ID.String()); err != nil {
		t.Fatalf("Get: %v", err)
	}

	_, err := svc.Get(context.Background(), other.ID, member.ID.String())
	wantCode(t, err, utils.CodeNotFound)

	_, bad := svc.Get(context.Background(), home.ID, "not-a-uuid")
	wantCode(t, bad, utils.CodeValidation)
}

func TestUpdateMemberAppliesPartialFields(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewMemberService(store.repo(), testLogger())

	name := "Ravi Kumar"
	inactive := false
	resp, err := svc.Update(context.Background(), gym.ID, member.ID.String(), &request.UpdateMemberRequest{
		Name:     &name,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if resp.Name != "Ravi Kumar" {
		t.Errorf("name = %s", resp.Name)
	}
	if resp.IsActive {
		t.Error("is_active must be updated")
	}
	if resp.Phone != member.Phone {
		t.Error("omitted fields must keep their values")
	}
}

func TestDeleteMember(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewMemberService(store.repo(), testLogger())

	if err := svc.Delete(context.Background(), gym.ID, member.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := svc.Get(context.Background(), gym.ID, member.ID.String())
	wantCode(t, err, utils.CodeNotFound)
}

func TestRenewExtendsFromMembershipEnd(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	member := seedMember(store, gym, "Ravi", end)
	svc := NewMemberService(store.repo(), testLogger())

	resp, err := svc.Renew(context.Background(), gym.ID, member.ID.String(), &request.RenewMemberRequest{Months: 3})
	if err != nil {
		t.Fatalf("Renew: %v", err)
	}

	want := end.AddDate(0, 3, 0)
	if !resp.MembershipEnd.Equal(want) {
		t.Errorf("membership_end = %s, want %s", resp.MembershipEnd, want)
	}
}

func TestRenewValidatesMonths(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	member := seedMember(store, gym, "Ravi", time.Now().AddDate(0, 1, 0))
	svc := NewMemberService(store.repo(), testLogger())

	_, zero := svc.Renew(context.Background(), gym.ID, member.ID.String(), &request.RenewMemberRequest{Months: 0})
	wantCode(t, zero, utils.CodeValidation)

	_, tooMany := svc.Renew(context.Background(), gym.ID, member.ID.String(), &request.RenewMemberRequest{Months: 25})
	wantCode(t, tooMany, utils.CodeValidation)
}

func TestListMembersStatusFilter(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	seedMember(store, gym, "Current", time.Now().AddDate(0, 1, 0))
	seedMember(store, gym, "Lapsed", time.Now().AddDate(0, 0, -10))
	svc := NewMemberService(store.repo(), testLogger())

	active, err := svc.List(context.Background(), gym.ID, &request.ListMembersQuery{Status: "active"})
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if active.Pagination.Total != 1 || active.Data[0].Name != "Current" {
		t.Errorf("active filter returned %d rows", active.Pagination.Total)
	}

	expired, err := svc.List(context.Background(), gym.ID, &request.ListMembersQuery{Status: "expired"})
	if err != nil {
		t.Fatalf("List expired: %v", err)
	}
	if expired.Pagination.Total != 1 || expired.Data[0].Name != "Lapsed" {
		t.Errorf("expired filter returned %d rows", expired.Pagination.Total)
	}

	all, err := svc.List(context.Background(), gym.ID, &request.ListMembersQuery{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if all.Pagination.Total != 2 {
		t.Errorf("all filter returned %d rows", all.Pagination.Total)
	}
}

func TestListMembersSearch(t *testing.T) {
	store := newFakeStore()
	gym := seedGym(store, "iron-temple")
	seedMember(store, gym, "Ravi Kumar", time.Now().AddDate(0, 1, 0))
	seedMember(store, gym, "Asha Patel", time.Now().AddDate(0, 1, 0))
	svc := NewMemberService(store.repo(), testLogger())

	resp, err := svc.List(context.Background(), gym.ID, &request.ListMembersQuery{Search: "ravi"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Pagination.Total != 1 || resp.Data[0].Name != "Ravi Kumar" {
		t.Errorf("search returned %d rows", resp.Pagination.Total)
	}
}
