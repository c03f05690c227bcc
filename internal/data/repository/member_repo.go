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

// MemberFilter narrows List/Count queries. Status is one of
// "all", "active", "expired".
type MemberFilter struct {
	Search string
	Status string
	Today  time.Time
	Limit  int
	Offset int
}

// ExpiringMember is a reminder-query row: the member plus the owning gym's
// contact details, spanning all tenants.
type ExpiringMember struct {
	Member     entity.Member
	GymName    string
	OwnerEmail string
}

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	FindByID(ctx context.Context, gymID, id uuid.UUID) (*entity.Member, error)
	FindByQRCode(ctx context.Context, gymID uuid.UUID, qrCode string) (*entity.Member, error)
	List(ctx context.Context, gymID uuid.UUID, filter MemberFilter) ([]entity.Member, error)
	Count(ctx context.Context, gymID uuid.UUID, filter MemberFilter) (int64, error)
	Update(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, gymID, id uuid.UUID) error
	CountByGym(ctx context.Context, gymID uuid.UUID) (int64, error)
	CountActive(ctx context.Context, gymID uuid.UUID, today time.Time) (int64, error)
	CountExpiringBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error)
	// FindExpiringBetween spans all gyms; used by the reminder dispatcher.
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]ExpiringMember, error)
}

type memberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMemberRepository(db database.PgxIface, log *zap.Logger) MemberRepository {
	return &memberRepository{
		db:  db,
		log: log.With(zap.String("repository", "member")),
	}
}

const memberColumns = `id, gym_id, name, phone, qr_code, is_active,
	membership_start, membership_end, created_at, updated_at, deleted_at`

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	query := `
		INSERT INTO members (id, gym_id, name, phone, qr_code, is_active,
		                     membership_start, membership_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.GymID,
		member.Name,
		member.Phone,
		member.QRCode,
		member.IsActive,
		member.MembershipStart,
		member.MembershipEnd,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create member",
			zap.Error(err),
			zap.String("gym_id", member.GymID.String()),
		)
		return fmt.Errorf("create member %s: %w", member.Name, err)
	}

	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, gymID, id uuid.UUID) (*entity.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id, gymID))
}

func (r *memberRepository) FindByQRCode(ctx context.Context, gymID uuid.UUID, qrCode string) (*entity.Member, error) {
	// Always scoped by gym: a code from another tenant must behave as unknown.
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND qr_code = $2 AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(ctx, query, gymID, qrCode))
}

func (r *memberRepository) List(ctx context.Context, gymID uuid.UUID, filter MemberFilter) ([]entity.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL
	` + filterClause(filter) + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, gymID, "%"+filter.Search+"%", filter.Today, filter.Limit, filter.Offset)
	if err != nil {
		r.log.Error("Failed to list members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		var m entity.Member
		if err := r.scanInto(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *memberRepository) Count(ctx context.Context, gymID uuid.UUID, filter MemberFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL
	` + filterClause(filter)

	var total int64
	err := r.db.QueryRow(ctx, query, gymID, "%"+filter.Search+"%", filter.Today).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return 0, fmt.Errorf("count members: %w", err)
	}

	return total, nil
}

// filterClause appends search and status conditions. Placeholders $2 (search
// pattern) and $3 (today) are always bound even when unused so the clause can
// be composed statically.
func filterClause(filter MemberFilter) string {
	clause := `
		AND ($2 = '%%' OR name ILIKE $2 OR phone ILIKE $2)
	`

	switch filter.Status {
	case "active":
		clause += `
		AND is_active = true AND membership_end >= $3
	`
	case "expired":
		clause += `
		AND membership_end < $3
	`
	default:
		clause += `
		AND $3::timestamptz IS NOT NULL
	`
	}

	return clause
}

func (r *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	query := `
		UPDATE members
		SET name = $3, phone = $4, is_active = $5,
		    membership_start = $6, membership_end = $7, updated_at = $8
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		member.ID,
		member.GymID,
		member.Name,
		member.Phone,
		member.IsActive,
		member.MembershipStart,
		member.MembershipEnd,
		member.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update member", zap.Error(err), zap.String("member_id", member.ID.String()))
		return fmt.Errorf("update member %s: %w", member.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", member.ID.String())
	}

	return nil
}

func (r *memberRepository) Delete(ctx context.Context, gymID, id uuid.UUID) error {
	query := `
		UPDATE members
		SET deleted_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, gymID)
	if err != nil {
		r.log.Error("Failed to delete member", zap.Error(err), zap.String("member_id", id.String()))
		return fmt.Errorf("delete member %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", id.String())
	}

	return nil
}

func (r *memberRepository) CountByGym(ctx context.Context, gymID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE gym_id = $1 AND deleted_at IS NULL`,
		gymID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count members for gym: %w", err)
	}

	return total, nil
}

func (r *memberRepository) CountActive(ctx context.Context, gymID uuid.UUID, today time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL
		  AND is_active = true AND membership_end >= $2
	`, gymID, today).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count active members: %w", err)
	}

	return total, nil
}

func (r *memberRepository) CountExpiringBetween(ctx context.Context, gymID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL
		  AND is_active = true
		  AND membership_end >= $2 AND membership_end <= $3
	`, gymID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count expiring members: %w", err)
	}

	return total, nil
}

func (r *memberRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]ExpiringMember, error) {
	query := `
		SELECT m.id, m.gym_id, m.name, m.phone, m.qr_code, m.is_active,
		       m.membership_start, m.membership_end, m.created_at, m.updated_at, m.deleted_at,
		       g.name, g.owner_email
		FROM members m
		JOIN gyms g ON g.id = m.gym_id AND g.deleted_at IS NULL
		WHERE m.deleted_at IS NULL
		  AND m.is_active = true
		  AND m.membership_end >= $1 AND m.membership_end <= $2
		ORDER BY m.membership_end ASC
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find expiring members", zap.Error(err))
		return nil, fmt.Errorf("find expiring members: %w", err)
	}
	defer rows.Close()

	var expiring []ExpiringMember
	for rows.Next() {
		var e ExpiringMember
		err := rows.Scan(
			&e.Member.ID,
			&e.Member.GymID,
			&e.Member.Name,
			&e.Member.Phone,
			&e.Member.QRCode,
			&e.Member.IsActive,
			&e.Member.MembershipStart,
			&e.Member.MembershipEnd,
			&e.Member.CreatedAt,
			&e.Member.UpdatedAt,
			&e.Member.DeletedAt,
			&e.GymName,
			&e.OwnerEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan expiring member: %w", err)
		}
		expiring = append(expiring, e)
	}

	return expiring, rows.Err()
}

func (r *memberRepository) scanOne(row pgx.Row) (*entity.Member, error) {
	var m entity.Member
	err := r.scanInto(row, &m)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find member", zap.Error(err))
		return nil, fmt.Errorf("find member: %w", err)
	}

	return &m, nil
}

func (r *memberRepository) scanInto(row pgx.Row, m *entity.Member) error {
	return row.Scan(
		&m.ID,
		&m.GymID,
		&m.Name,
		&m.Phone,
		&m.QRCode,
		&m.IsActive,
		&m.MembershipStart,
		&m.MembershipEnd,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
}
