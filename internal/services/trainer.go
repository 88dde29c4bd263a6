package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// TrainerRepository defines the storage methods the trainer service needs.
type TrainerRepository interface {
	ListTrainers(ctx context.Context) ([]*models.Trainer, error)
	CreateTrainer(ctx context.Context, firstName string, lastName *string, specialization string) (string, error)
	AssignTrainer(ctx context.Context, memberEmail, trainerID string) error
	UnassignTrainer(ctx context.Context, memberEmail string) error
	ListTrainerAssignments(ctx context.Context, onlyActive bool) ([]*models.TrainerAssignment, error)
}

// TrainerService implements trainer management and member assignment.
type TrainerService struct {
	repo TrainerRepository
	log  *slog.Logger
}

// NewTrainerService creates a new TrainerService.
func NewTrainerService(repo TrainerRepository, log *slog.Logger) *TrainerService {
	return &TrainerService{
		repo: repo,
		log:  log,
	}
}

// List returns all trainers ordered by name.
func (s *TrainerService) List(ctx context.Context) ([]*models.Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

// Add creates a trainer from a full name and specialization, returning the
// new id.
func (s *TrainerService) Add(ctx context.Context, req models.DummyAddTrainer) (string, error) {
	firstName, lastName := SplitFullName(req.FullName)
	id, err := s.repo.CreateTrainer(ctx, firstName, lastName, req.Specialization)
	if err != nil {
		return "", err
	}
	s.log.Info("created trainer", slog.String("trainer_id", id))
	return id, nil
}

// Assign links the member found by email to the trainer.
func (s *TrainerService) Assign(ctx context.Context, req models.DummyAssignTrainer) error {
	if err := s.repo.AssignTrainer(ctx, req.Email, req.TrainerID); err != nil {
		return err
	}
	s.log.Info("assigned trainer",
		slog.String("email", req.Email),
		slog.String("trainer_id", req.TrainerID))
	return nil
}

// Unassign clears the member's trainer link.
func (s *TrainerService) Unassign(ctx context.Context, req models.DummyUnassignTrainer) error {
	if err := s.repo.UnassignTrainer(ctx, req.Email); err != nil {
		return err
	}
	s.log.Info("unassigned trainer", slog.String("email", req.Email))
	return nil
}

// Assignments returns trainer/member pairs, filtered to members with an
// active latest membership when onlyActive is set.
func (s *TrainerService) Assignments(ctx context.Context, onlyActive bool) ([]*models.TrainerAssignment, error) {
	return s.repo.ListTrainerAssignments(ctx, onlyActive)
}
