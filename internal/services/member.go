package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/gym-management/internal/lib/money"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// MemberRepository defines the storage methods the member service needs.
type MemberRepository interface {
	// RegisterMember creates (or reuses) the user and creates the
	// membership plus its pending payment in one transaction.
	RegisterMember(ctx context.Context, firstName string, lastName *string,
		age int, email, planID, currencyCode string) (*models.RegisterResult, error)
	// ListMembers returns every user with its latest membership and plan.
	ListMembers(ctx context.Context) ([]*models.MemberRow, error)
}

// MemberService implements member registration and listing.
type MemberService struct {
	repo         MemberRepository
	log          *slog.Logger
	currencyCode string
}

// NewMemberService creates a new MemberService.
func NewMemberService(repo MemberRepository, log *slog.Logger, currencyCode string) *MemberService {
	return &MemberService{
		repo:         repo,
		log:          log,
		currencyCode: currencyCode,
	}
}

// Register splits the full name into first name plus optional remainder and
// runs the registration transaction. Payments are recorded in the configured
// currency with status PENDING.
func (s *MemberService) Register(ctx context.Context, req models.DummyRegisterMember) (*models.RegisterResult, error) {
	firstName, lastName := SplitFullName(req.FullName)

	result, err := s.repo.RegisterMember(ctx, firstName, lastName, req.Age, req.Email, req.PlanID, s.currencyCode)
	if err != nil {
		return nil, err
	}

	s.log.Info("registered member",
		slog.String("user_id", result.UserID),
		slog.String("membership_id", result.MembershipID),
		slog.String("payment_id", result.PaymentID))
	return result, nil
}

// List returns the member listing with display-formatted prices filled in.
func (s *MemberService) List(ctx context.Context) ([]*models.MemberRow, error) {
	rows, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.PriceCents != nil {
			formatted := money.Format(*row.PriceCents)
			row.Price = &formatted
		}
	}
	return rows, nil
}

// SplitFullName splits a trimmed full name at the first space: the first
// token becomes the first name, everything after it the last name, which is
// nil for a single-word name.
func SplitFullName(fullName string) (string, *string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return parts[0], nil
	}
	last := strings.TrimSpace(parts[1])
	return parts[0], &last
}
