package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/data/repository"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore is the in-memory state shared by the per-interface fakes below,
// so services can be exercised without a database. Composite operations
// mirror the transactional behavior of the real queries.
type fakeStore struct {
	mu sync.Mutex

	gyms       map[uuid.UUID]*entity.Gym
	admins     map[uuid.UUID]*entity.AdminUser
	sessions   map[string]*entity.Session
	members    map[uuid.UUID]*entity.Member
	attendance []*entity.Attendance
	otps       map[string]*entity.OTP
	runs       []*entity.ReminderLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		gyms:     make(map[uuid.UUID]*entity.Gym),
		admins:   make(map[uuid.UUID]*entity.AdminUser),
		sessions: make(map[string]*entity.Session),
		members:  make(map[uuid.UUID]*entity.Member),
		otps:     make(map[string]*entity.OTP),
	}
}

func (f *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		Gym:         &fakeGymRepo{f},
		Admin:       &fakeAdminRepo{f},
		Session:     &fakeSessionRepo{f},
		Member:      &fakeMemberRepo{f},
		Attendance:  &fakeAttendanceRepo{f},
		OTP:         &fakeOTPRepo{f},
		ReminderLog: &fakeReminderLogRepo{f},
	}
}

// ---- GymRepository ----

type fakeGymRepo struct{ s *fakeStore }

func (r *fakeGymRepo) CreateWithOwner(ctx context.Context, gym *entity.Gym, admin *entity.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.gyms[gym.ID] = gym
	r.s.admins[admin.ID] = admin
	delete(r.s.otps, admin.Email)
	return nil
}

func (r *fakeGymRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Gym, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.gyms[id], nil
}

func (r *fakeGymRepo) FindBySlug(ctx context.Context, slug string) (*entity.Gym, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, gym := range r.s.gyms {
		if gym.Slug == slug {
			return gym, nil
		}
	}
	return nil, nil
}

func (r *fakeGymRepo) Update(ctx context.Context, gym *entity.Gym) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.gyms[gym.ID] = gym
	return nil
}

// ---- AdminRepository ----

type fakeAdminRepo struct{ s *fakeStore }

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, admin := range r.s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.admins[id], nil
}

func (r *fakeAdminRepo) UpdatePassword(ctx context.Context, adminID uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if admin, ok := r.s.admins[adminID]; ok {
		admin.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeAdminRepo) ResetPassword(ctx context.Context, adminID uuid.UUID, passwordHash, otpEmail string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	admin, ok := r.s.admins[adminID]
	if !ok {
		return fmt.Errorf("admin %s not found", adminID)
	}
	admin.PasswordHash = passwordHash
	delete(r.s.otps, otpEmail)
	now := time.Now()
	for _, session := range r.s.sessions {
		if session.AdminID == adminID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

// ---- SessionRepository ----

type fakeSessionRepo struct{ s *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session, ok := r.s.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllAdminSessions(ctx context.Context, adminID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, session := range r.s.sessions {
		if session.AdminID == adminID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

// ---- MemberRepository ----

type fakeMemberRepo struct{ s *fakeStore }

func (r *fakeMemberRepo) Create(ctx context.Context, member *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, gymID, id uuid.UUID) (*entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	member, ok := r.s.members[id]
	if !ok || member.GymID != gymID || member.DeletedAt != nil {
		return nil, nil
	}
	return member, nil
}

func (r *fakeMemberRepo) FindByQRCode(ctx context.Context, gymID uuid.UUID, qrCode string) (*entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, member := range r.s.members {
		if member.GymID == gymID && member.QRCode == qrCode && member.DeletedAt == nil {
			return member, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) List(ctx context.Context, gymID uuid.UUID, filter repository.MemberFilter) ([]entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Member
	for _, member := range r.s.members {
		if matchesFilter(member, gymID, filter) {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Count(ctx context.Context, gymID uuid.UUID, filter repository.MemberFilter) (int64, error) {
	members, _ := r.List(ctx, gymID, filter)
	return int64(len(members)), nil
}

func matchesFilter(member *entity.Member, gymID uuid.UUID, filter repository.MemberFilter) bool {
	if member.GymID != gymID || member.DeletedAt != nil {
		return false
	}
	if filter.Search != "" &&
		!strings.Contains(strings.ToLower(member.Name), strings.ToLower(filter.Search)) &&
		!strings.Contains(member.Phone, filter.Search) {
		return false
	}
	switch filter.Status {
	case "active":
		return member.IsActive && !member.MembershipEnd.Before(filter.Today)
	case "expired":
		return member.MembershipEnd.Before(filter.Today)
	}
	return true
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, gymID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if member, ok := r.s.members[id]; ok && member.GymID == gymID {
		now := time.Now()
		member.DeletedAt = &now
	}
	return nil
}

func (r *fakeMemberRepo) CountByGym(ctx context.Context, gymID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, member := range r.s.members {
		if member.GymID == gymID && member.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountActive(ctx context.Context, gymID uuid.UUID, today time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, member := range r.s.members {
		if member.GymID == gymID && member.DeletedAt == nil &&
			member.IsActive && !member.MembershipEnd.Before(today) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) CountExpiringBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, member := range r.s.members {
		if member.GymID == gymID && member.DeletedAt == nil && member.IsActive &&
			!member.MembershipEnd.Before(from) && !member.MembershipEnd.After(to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]repository.ExpiringMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ExpiringMember
	for _, member := range r.s.members {
		if member.DeletedAt != nil || !member.IsActive ||
			member.MembershipEnd.Before(from) || member.MembershipEnd.After(to) {
			continue
		}
		gym := r.s.gyms[member.GymID]
		if gym == nil {
			continue
		}
		out = append(out, repository.ExpiringMember{
			Member:     *member,
			GymName:    gym.Name,
			OwnerEmail: gym.OwnerEmail,
		})
	}
	return out, nil
}

// ---- AttendanceRepository ----

type fakeAttendanceRepo struct{ s *fakeStore }

func (r *fakeAttendanceRepo) Toggle(ctx context.Context, gymID, memberID uuid.UUID, now time.Time) (*entity.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var open *entity.Attendance
	for _, record := range r.s.attendance {
		if record.GymID == gymID && record.MemberID == memberID && record.CheckOutTime == nil {
			if open == nil || record.CheckInTime.After(open.CheckInTime) {
				open = record
			}
		}
	}

	if open != nil {
		out := now
		open.CheckOutTime = &out
		return open, true, nil
	}

	record := &entity.Attendance{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		GymID:       gymID,
		MemberID:    memberID,
		CheckInTime: now,
	}
	r.s.attendance = append(r.s.attendance, record)
	return record, false, nil
}

func (r *fakeAttendanceRepo) ListByGym(ctx context.Context, gymID uuid.UUID, date *time.Time, limit, offset int) ([]repository.AttendanceWithMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.AttendanceWithMember
	for _, record := range r.s.attendance {
		if record.GymID != gymID {
			continue
		}
		if date != nil {
			day := utils.StartOfDay(*date)
			if record.CheckInTime.Before(day) || record.CheckInTime.After(utils.EndOfDay(day)) {
				continue
			}
		}
		member := r.s.members[record.MemberID]
		out = append(out, repository.AttendanceWithMember{
			Attendance:    *record,
			MemberName:    member.Name,
			MemberPhone:   member.Phone,
			MembershipEnd: member.MembershipEnd,
		})
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountByGym(ctx context.Context, gymID uuid.UUID, date *time.Time) (int64, error) {
	rows, _ := r.ListByGym(ctx, gymID, date, 0, 0)
	return int64(len(rows)), nil
}

func (r *fakeAttendanceRepo) ListByMember(ctx context.Context, gymID, memberID uuid.UUID, limit int) ([]entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Attendance
	for _, record := range r.s.attendance {
		if record.GymID == gymID && record.MemberID == memberID {
			out = append(out, *record)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountCheckInsBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, record := range r.s.attendance {
		if record.GymID == gymID && !record.CheckInTime.Before(from) && !record.CheckInTime.After(to) {
			n++
		}
	}
	return n, nil
}

// ---- OTPRepository ----

type fakeOTPRepo struct{ s *fakeStore }

func (r *fakeOTPRepo) Replace(ctx context.Context, otp *entity.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.otps[otp.Email] = otp
	return nil
}

func (r *fakeOTPRepo) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.otps[email], nil
}

func (r *fakeOTPRepo) MarkVerified(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if otp, ok := r.s.otps[email]; ok {
		otp.Verified = true
	}
	return nil
}

func (r *fakeOTPRepo) DeleteByEmail(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.otps, email)
	return nil
}

// ---- ReminderLogRepository ----

type fakeReminderLogRepo struct{ s *fakeStore }

func (r *fakeReminderLogRepo) Create(ctx context.Context, logEntry *entity.ReminderLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.runs = append(r.s.runs, logEntry)
	return nil
}

func (r *fakeReminderLogRepo) FindLatest(ctx context.Context) (*entity.ReminderLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.runs) == 0 {
		return nil, nil
	}
	return r.s.runs[len(r.s.runs)-1], nil
}

// ---- Mailer ----

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// ---- shared fixture helpers ----

func testConfig() *utils.Config {
	return &utils.Config{
		App:       utils.AppConfig{Name: "GymTest"},
		Session:   utils.SessionConfig{ExpiryHours: 168},
		OTP:       utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
		RateLimit: utils.RateLimitConfig{SendMax: 3, VerifyMax: 5, WindowMinutes: 15},
		Reminder:  utils.ReminderConfig{WindowDays: 3},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedGym(store *fakeStore, slug string) *entity.Gym {
	now := time.Now()
	gym := &entity.Gym{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:        "Test Gym " + slug,
		Slug:        slug,
		OwnerName:   "Owner",
		OwnerEmail:  slug + "-owner@example.com",
		OwnerPhone:  "9876543210",
		TrialEndsAt: now.AddDate(0, 0, 15),
	}
	store.gyms[gym.ID] = gym
	return gym
}

func seedAdmin(store *fakeStore, gym *entity.Gym, email, password string) *entity.AdminUser {
	now := time.Now()
	hash, _ := utils.HashPassword(password)
	admin := &entity.AdminUser{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		GymID:        gym.ID,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleOwner,
	}
	store.admins[admin.ID] = admin
	return admin
}

func seedMember(store *fakeStore, gym *entity.Gym, name string, end time.Time) *entity.Member {
	now := time.Now()
	member := &entity.Member{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		GymID:           gym.ID,
		Name:            name,
		Phone:           "9000000000",
		QRCode:          uuid.NewString(),
		IsActive:        true,
		MembershipStart: now.AddDate(0, -1, 0),
		MembershipEnd:   end,
	}
	store.members[member.ID] = member
	return member
}
