package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/rabbitmq"
)

// ReminderRepository defines the storage methods the scheduler needs.
type ReminderRepository interface {
	FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.MembershipReminder, error)
}

// SchedulerService periodically finds memberships that expire tomorrow and
// publishes reminder events for external notification workers.
type SchedulerService struct {
	repo ReminderRepository
	log  *slog.Logger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(repo ReminderRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindExpiringMemberships runs until the context is cancelled, publishing a
// reminder for every membership ending tomorrow every 12 hours.
func (s *SchedulerService) FindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishReminders(ctx, channel)
		}
	}
}

func (s *SchedulerService) publishReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("looking for memberships expiring tomorrow")
	reminders, err := s.repo.FindMembershipsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring memberships", sl.Err(err))
		return
	}
	for _, reminder := range reminders {
		if err := rabbitmq.PublishMessage(channel, "notifications", "expiring", reminder); err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
	s.log.Info("published membership reminders", slog.Int("count", len(reminders)))
}
