package repository

import (
	"context"
	"fmt"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AttendanceWithMember is a list row joined with the member summary.
type AttendanceWithMember struct {
	Attendance    entity.Attendance
	MemberName    string
	MemberPhone   string
	MembershipEnd time.Time
}

type AttendanceRepository interface {
	// Toggle closes the member's open session if one exists, else opens a new
	// one. The member row is locked for the duration of the transaction so
	// concurrent scans serialize instead of both observing "no open session".
	Toggle(ctx context.Context, gymID, memberID uuid.UUID, now time.Time) (*entity.Attendance, bool, error)
	ListByGym(ctx context.Context, gymID uuid.UUID, date *time.Time, limit, offset int) ([]AttendanceWithMember, error)
	CountByGym(ctx context.Context, gymID uuid.UUID, date *time.Time) (int64, error)
	ListByMember(ctx context.Context, gymID, memberID uuid.UUID, limit int) ([]entity.Attendance, error)
	CountCheckInsBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error)
}

type attendanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttendanceRepository(db database.PgxIface, log *zap.Logger) AttendanceRepository {
	return &attendanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "attendance")),
	}
}

func (r *attendanceRepository) Toggle(ctx context.Context, gymID, memberID uuid.UUID, now time.Time) (*entity.Attendance, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin attendance toggle: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent scans for the same member.
	var locked uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM members
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
		FOR UPDATE
	`, memberID, gymID).Scan(&locked)
	if err == pgx.ErrNoRows {
		return nil, false, fmt.Errorf("member %s not found", memberID.String())
	}
	if err != nil {
		r.log.Error("Failed to lock member row", zap.Error(err), zap.String("member_id", memberID.String()))
		return nil, false, fmt.Errorf("lock member %s: %w", memberID.String(), err)
	}

	var open entity.Attendance
	err = tx.QueryRow(ctx, `
		SELECT id, gym_id, member_id, check_in_time, check_out_time, created_at
		FROM attendance
		WHERE member_id = $1 AND gym_id = $2 AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`, memberID, gymID).Scan(
		&open.ID,
		&open.GymID,
		&open.MemberID,
		&open.CheckInTime,
		&open.CheckOutTime,
		&open.CreatedAt,
	)

	switch err {
	case nil:
		// Open session exists: check-out path.
		if _, err := tx.Exec(ctx, `
			UPDATE attendance SET check_out_time = $2 WHERE id = $1
		`, open.ID, now); err != nil {
			r.log.Error("Failed to close attendance session", zap.Error(err), zap.String("attendance_id", open.ID.String()))
			return nil, false, fmt.Errorf("close attendance %s: %w", open.ID.String(), err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("commit attendance toggle: %w", err)
		}

		open.CheckOutTime = &now
		return &open, true, nil

	case pgx.ErrNoRows:
		// No open session: check-in path.
		record := entity.Attendance{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			GymID:       gymID,
			MemberID:    memberID,
			CheckInTime: now,
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO attendance (id, gym_id, member_id, check_in_time, check_out_time, created_at)
			VALUES ($1, $2, $3, $4, NULL, $5)
		`, record.ID, record.GymID, record.MemberID, record.CheckInTime, record.CreatedAt); err != nil {
			r.log.Error("Failed to create attendance session", zap.Error(err), zap.String("member_id", memberID.String()))
			return nil, false, fmt.Errorf("create attendance for %s: %w", memberID.String(), err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("commit attendance toggle: %w", err)
		}

		return &record, false, nil

	default:
		r.log.Error("Failed to find open session", zap.Error(err), zap.String("member_id", memberID.String()))
		return nil, false, fmt.Errorf("find open session for %s: %w", memberID.String(), err)
	}
}

func (r *attendanceRepository) ListByGym(ctx context.Context, gymID uuid.UUID, date *time.Time, limit, offset int) ([]AttendanceWithMember, error) {
	query := `
		SELECT a.id, a.gym_id, a.member_id, a.check_in_time, a.check_out_time, a.created_at,
		       m.name, m.phone, m.membership_end
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE a.gym_id = $1
		  AND ($2::timestamptz IS NULL OR (a.check_in_time >= $2 AND a.check_in_time <= $3))
		ORDER BY a.check_in_time DESC
		LIMIT $4 OFFSET $5
	`

	from, to := dayBounds(date)

	rows, err := r.db.Query(ctx, query, gymID, from, to, limit, offset)
	if err != nil {
		r.log.Error("Failed to list attendance", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []AttendanceWithMember
	for rows.Next() {
		var rec AttendanceWithMember
		err := rows.Scan(
			&rec.Attendance.ID,
			&rec.Attendance.GymID,
			&rec.Attendance.MemberID,
			&rec.Attendance.CheckInTime,
			&rec.Attendance.CheckOutTime,
			&rec.Attendance.CreatedAt,
			&rec.MemberName,
			&rec.MemberPhone,
			&rec.MembershipEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) CountByGym(ctx context.Context, gymID uuid.UUID, date *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance
		WHERE gym_id = $1
		  AND ($2::timestamptz IS NULL OR (check_in_time >= $2 AND check_in_time <= $3))
	`

	from, to := dayBounds(date)

	var total int64
	err := r.db.QueryRow(ctx, query, gymID, from, to).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count attendance", zap.Error(err), zap.String("gym_id", gymID.String()))
		return 0, fmt.Errorf("count attendance: %w", err)
	}

	return total, nil
}

func (r *attendanceRepository) ListByMember(ctx context.Context, gymID, memberID uuid.UUID, limit int) ([]entity.Attendance, error) {
	query := `
		SELECT id, gym_id, member_id, check_in_time, check_out_time, created_at
		FROM attendance
		WHERE gym_id = $1 AND member_id = $2
		ORDER BY check_in_time DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, gymID, memberID, limit)
	if err != nil {
		r.log.Error("Failed to list member attendance", zap.Error(err), zap.String("member_id", memberID.String()))
		return nil, fmt.Errorf("list member attendance: %w", err)
	}
	defer rows.Close()

	var records []entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		err := rows.Scan(
			&a.ID,
			&a.GymID,
			&a.MemberID,
			&a.CheckInTime,
			&a.CheckOutTime,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) CountCheckInsBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance
		WHERE gym_id = $1 AND check_in_time >= $2 AND check_in_time <= $3
	`, gymID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count check-ins: %w", err)
	}

	return total, nil
}

func dayBounds(date *time.Time) (*time.Time, *time.Time) {
	if date == nil {
		return nil, nil
	}

	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)
	return &from, &to
}
