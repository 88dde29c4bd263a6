package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// ListTrainers returns every trainer ordered case-insensitively by first
// then last name, with missing last names sorting as empty.
func (s *Storage) ListTrainers(ctx context.Context) ([]*models.Trainer, error) {
	const op = "storage.ListTrainers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, specialization
			  FROM trainers
			  ORDER BY LOWER(first_name), LOWER(COALESCE(last_name, ''))`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Trainer
	for rows.Next() {
		var item models.Trainer
		var lastName, specialization sql.NullString
		if err := rows.Scan(&item.ID, &item.FirstName, &lastName, &specialization); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lastName.Valid {
			item.LastName = &lastName.String
		}
		if specialization.Valid {
			item.Specialization = &specialization.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTrainer inserts a new trainer and returns its id.
func (s *Storage) CreateTrainer(ctx context.Context, firstName string, lastName *string, specialization string) (string, error) {
	const op = "storage.CreateTrainer"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := uuid.New().String()
	query := `INSERT INTO trainers (id, first_name, last_name, specialization, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`
	if _, err := s.DB.ExecContext(ctx, query, id, firstName, lastName, specialization); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// AssignTrainer links the user found by email to the trainer. The lookup and
// the update run in one transaction.
func (s *Storage) AssignTrainer(ctx context.Context, memberEmail, trainerID string) error {
	const op = "storage.AssignTrainer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var memberID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, memberEmail).Scan(&memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET trainer_id = $1, updated_at = NOW() WHERE id = $2`,
		trainerID, memberID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnassignTrainer clears the trainer link of the user found by email. The
// affected row count is the existence signal; no prior lookup is needed.
func (s *Storage) UnassignTrainer(ctx context.Context, memberEmail string) error {
	const op = "storage.UnassignTrainer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET trainer_id = NULL, updated_at = NOW() WHERE email = $1`,
		memberEmail)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	return nil
}

// ListTrainerAssignments returns every trainer/member pair together with the
// member's latest membership status. With onlyActive the result is filtered
// to members whose latest membership is still active.
func (s *Storage) ListTrainerAssignments(ctx context.Context, onlyActive bool) ([]*models.TrainerAssignment, error) {
	const op = "storage.ListTrainerAssignments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.first_name, t.last_name, t.specialization,
			      u.id, u.first_name, u.last_name, u.email,
			      m.status
			  FROM trainers t
			  JOIN users u ON u.trainer_id = t.id
			  LEFT JOIN LATERAL (
			      SELECT CASE WHEN m.end_date IS NULL OR m.end_date > NOW()
			                  THEN 'ACTIVE' ELSE 'EXPIRED' END AS status
			      FROM memberships m
			      WHERE m.user_id = u.id
			      ORDER BY m.start_date DESC
			      LIMIT 1
			  ) m ON true
			  WHERE (NOT $1) OR (m.status = 'ACTIVE')
			  ORDER BY LOWER(t.first_name), LOWER(COALESCE(t.last_name, '')),
			      LOWER(u.first_name), LOWER(COALESCE(u.last_name, ''))`
	rows, err := s.DB.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TrainerAssignment
	for rows.Next() {
		var item models.TrainerAssignment
		var trainerLastName, specialization, memberLastName, status sql.NullString
		if err := rows.Scan(&item.TrainerID, &item.TrainerFirstName, &trainerLastName,
			&specialization, &item.MemberID, &item.MemberFirstName, &memberLastName,
			&item.MemberEmail, &status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if trainerLastName.Valid {
			item.TrainerLastName = &trainerLastName.String
		}
		if specialization.Valid {
			item.Specialization = &specialization.String
		}
		if memberLastName.Valid {
			item.MemberLastName = &memberLastName.String
		}
		if status.Valid {
			item.MembershipStatus = &status.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
