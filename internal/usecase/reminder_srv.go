package usecase

import (
	"context"
	"time"

	"gym-management/internal/data/entity"
	"gym-management/internal/data/repository"
	"gym-management/internal/dto/response"
	"gym-management/pkg/mailer"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReminderService interface {
	// Run dispatches expiry digests to every gym with members about to lapse.
	Run(ctx context.Context, manual bool) (*response.ReminderRunResponse, error)
	Status(ctx context.Context, gymID uuid.UUID) (*response.ReminderStatusResponse, error)
}

type reminderService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewReminderService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) ReminderService {
	return &reminderService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log,
	}
}

// gymBatch accumulates one gym's digest while grouping the cross-tenant
// member query.
type gymBatch struct {
	gymID        uuid.UUID
	gymName      string
	ownerEmail   string
	expiredToday []mailer.ReminderMember
	expiringSoon []mailer.ReminderMember
}

func (s *reminderService) Run(ctx context.Context, manual bool) (*response.ReminderRunResponse, error) {
	runAt := time.Now()
	today := utils.StartOfDay(runAt)
	until := utils.EndOfDay(today.AddDate(0, 0, s.config.Reminder.WindowDays))

	rows, err := s.repo.Member.FindExpiringBetween(ctx, today, until)
	if err != nil {
		s.log.Error("Failed to load expiring members", zap.Error(err))
		return nil, utils.ErrInternal("failed to load expiring members", err)
	}

	// Group by gym, keeping first-seen order.
	var order []uuid.UUID
	batches := make(map[uuid.UUID]*gymBatch)
	for _, row := range rows {
		batch, ok := batches[row.Member.GymID]
		if !ok {
			batch = &gymBatch{
				gymID:      row.Member.GymID,
				gymName:    row.GymName,
				ownerEmail: row.OwnerEmail,
			}
			batches[row.Member.GymID] = batch
			order = append(order, row.Member.GymID)
		}

		m := mailer.ReminderMember{
			Name:          row.Member.Name,
			Phone:         row.Member.Phone,
			MembershipEnd: row.Member.MembershipEnd,
		}
		if utils.StartOfDay(row.Member.MembershipEnd).Equal(today) {
			batch.expiredToday = append(batch.expiredToday, m)
		} else {
			batch.expiringSoon = append(batch.expiringSoon, m)
		}
	}

	result := &response.ReminderRunResponse{
		TotalGyms:    len(order),
		TotalMembers: len(rows),
		Manual:       manual,
		Timestamp:    runAt,
		Results:      make([]response.ReminderGymResult, 0, len(order)),
	}

	for _, gymID := range order {
		batch := batches[gymID]
		gymResult := response.ReminderGymResult{
			GymID:        batch.gymID.String(),
			GymName:      batch.gymName,
			OwnerEmail:   batch.ownerEmail,
			ExpiredToday: len(batch.expiredToday),
			ExpiringSoon: len(batch.expiringSoon),
		}

		// One gym's mail failure never aborts the run.
		if err := s.sendDigest(ctx, batch); err != nil {
			s.log.Error("Failed to send reminder digest",
				zap.Error(err),
				zap.String("gym_id", batch.gymID.String()),
				zap.String("owner_email", batch.ownerEmail))
			gymResult.Error = err.Error()
			result.EmailsFailed++
		} else {
			gymResult.Success = true
			result.EmailsSent++
		}

		result.Results = append(result.Results, gymResult)
	}

	logEntry := &entity.ReminderLog{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: runAt,
		},
		RunAt:         runAt,
		Manual:        manual,
		GymsProcessed: result.TotalGyms,
		EmailsSent:    result.EmailsSent,
		EmailsFailed:  result.EmailsFailed,
	}
	if err := s.repo.ReminderLog.Create(ctx, logEntry); err != nil {
		s.log.Error("Failed to record reminder run", zap.Error(err))
		return nil, utils.ErrInternal("failed to record reminder run", err)
	}

	s.log.Info("Reminder run finished",
		zap.Bool("manual", manual),
		zap.Int("gyms", result.TotalGyms),
		zap.Int("sent", result.EmailsSent),
		zap.Int("failed", result.EmailsFailed))

	return result, nil
}

func (s *reminderService) Status(ctx context.Context, gymID uuid.UUID) (*response.ReminderStatusResponse, error) {
	today := utils.StartOfDay(time.Now())

	expiringSoon, err := s.repo.Member.CountExpiringBetween(ctx, gymID, today, utils.EndOfDay(today.AddDate(0, 0, s.config.Reminder.WindowDays)))
	if err != nil {
		s.log.Error("Failed to count expiring members", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load reminder status", err)
	}

	expiredToday, err := s.repo.Member.CountExpiringBetween(ctx, gymID, today, utils.EndOfDay(today))
	if err != nil {
		s.log.Error("Failed to count members expiring today", zap.Error(err), zap.String("gym_id", gymID.String()))
		return nil, utils.ErrInternal("failed to load reminder status", err)
	}

	status := &response.ReminderStatusResponse{
		ExpiringSoonCount: expiringSoon,
		ExpiredTodayCount: expiredToday,
	}

	lastRun, err := s.repo.ReminderLog.FindLatest(ctx)
	if err != nil {
		s.log.Error("Failed to load last reminder run", zap.Error(err))
		return nil, utils.ErrInternal("failed to load reminder status", err)
	}
	if lastRun != nil {
		status.LastRunAt = &lastRun.RunAt
		status.LastRunManual = lastRun.Manual
	}

	return status, nil
}

func (s *reminderService) sendDigest(ctx context.Context, batch *gymBatch) error {
	subject, body, err := mailer.ExpiryReminderEmail(batch.gymName, batch.expiredToday, batch.expiringSoon)
	if err != nil {
		return err
	}
	return s.mail.Send(ctx, batch.ownerEmail, subject, body)
}
