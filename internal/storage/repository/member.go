package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// ListMembers returns every user joined to its most recent membership (by
// start date) and that membership's plan. Users without a membership still
// appear with nil plan and membership fields. The membership status is
// derived from the end date so listings and registration agree on what
// "active" means.
func (s *Storage) ListMembers(ctx context.Context) ([]*models.MemberRow, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.first_name, u.last_name, u.age, u.email,
			      p.name, p.price_cents,
			      CASE WHEN m.id IS NULL THEN NULL
			           WHEN m.end_date IS NULL OR m.end_date > NOW() THEN 'ACTIVE'
			           ELSE 'EXPIRED' END,
			      m.start_date, m.end_date
			  FROM users u
			  LEFT JOIN LATERAL (
			      SELECT m.id, m.plan_id, m.start_date, m.end_date
			      FROM memberships m
			      WHERE m.user_id = u.id
			      ORDER BY m.start_date DESC
			      LIMIT 1
			  ) m ON true
			  LEFT JOIN plans p ON p.id = m.plan_id
			  ORDER BY LOWER(u.first_name), LOWER(COALESCE(u.last_name, ''))`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MemberRow
	for rows.Next() {
		var item models.MemberRow
		var lastName, planName, status sql.NullString
		var priceCents sql.NullInt64
		var startDate, endDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.FirstName, &lastName, &item.Age, &item.Email,
			&planName, &priceCents, &status, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lastName.Valid {
			item.LastName = &lastName.String
		}
		if planName.Valid {
			item.PlanName = &planName.String
		}
		if priceCents.Valid {
			cents := int(priceCents.Int64)
			item.PriceCents = &cents
		}
		if status.Valid {
			item.MembershipStatus = &status.String
		}
		if startDate.Valid {
			item.StartDate = &startDate.Time
		}
		if endDate.Valid {
			item.EndDate = &endDate.Time
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RegisterMember performs the whole registration in one transaction: plan
// lookup, user get-or-create by email, the one-active-membership guard,
// then the membership and its PENDING payment. Any failure rolls the whole
// write back.
func (s *Storage) RegisterMember(ctx context.Context, firstName string, lastName *string,
	age int, email, planID, currencyCode string) (*models.RegisterResult, error) {
	const op = "storage.RegisterMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var durationMonths, priceCents int
	err = tx.QueryRowContext(ctx,
		`SELECT duration_months, price_cents FROM plans WHERE id = $1`,
		planID).Scan(&durationMonths, &priceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var userID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		userID = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, email, password, role, first_name, last_name, age, created_at, updated_at)
			 VALUES ($1, $2, NULL, 'MEMBER', $3, $4, $5, NOW(), NOW())`,
			userID, email, firstName, lastName, age)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var activeCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships
		 WHERE user_id = $1 AND (end_date IS NULL OR end_date > NOW())`,
		userID).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if activeCount > 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateActiveMembership)
	}

	membershipID := uuid.New().String()
	startDate := time.Now().UTC()
	endDate := startDate.AddDate(0, durationMonths, 0)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, plan_id, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
		membershipID, userID, planID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paymentID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, membership_id, amount_cents, currency_code, status, created_at)
		 VALUES ($1, $2, $3, $4, 'PENDING', NOW())`,
		paymentID, membershipID, priceCents, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.RegisterResult{
		UserID:       userID,
		MembershipID: membershipID,
		PaymentID:    paymentID,
	}, nil
}
