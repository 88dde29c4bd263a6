package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// MarkAttendanceToday marks a member present for today's session inside one
// transaction. The session is scoped per trainer per day and created lazily:
// the first check-in of a trainer's members that day creates it, later
// check-ins of the same day reuse it. A repeated check-in by the same member
// commits nothing new and reports AlreadyMarked instead of failing; the
// unique constraint on attendance (user_id, session_id) backs this up under
// concurrent check-ins.
//
// dayStartUTC/dayEndUTC bound the reference-timezone calendar day; they are
// computed by the caller so the storage layer stays timezone-agnostic.
func (s *Storage) MarkAttendanceToday(ctx context.Context, memberEmail string,
	dayStartUTC, dayEndUTC time.Time) (*models.MarkAttendanceResult, error) {
	const op = "storage.MarkAttendanceToday"
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

	var userID string
	var trainerID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT id, trainer_id FROM users WHERE email = $1`,
		memberEmail).Scan(&userID, &trainerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT CASE WHEN end_date IS NULL OR end_date > NOW() THEN 'ACTIVE' ELSE 'EXPIRED' END
		 FROM memberships
		 WHERE user_id = $1
		 ORDER BY start_date DESC
		 LIMIT 1`,
		userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMembershipNotActive)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !strings.EqualFold(status, "ACTIVE") {
		return nil, fmt.Errorf("%s: %w", op, ErrMembershipNotActive)
	}

	var sessionID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM sessions
		 WHERE start_at >= $1 AND start_at < $2
		   AND (($3::text IS NULL AND trainer_id IS NULL) OR trainer_id = $3)
		 LIMIT 1`,
		dayStartUTC, dayEndUTC, trainerID).Scan(&sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		sessionID = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (id, trainer_id, start_at, title, created_at)
			 VALUES ($1, $2, $3, 'Daily Session', NOW())`,
			sessionID, trainerID, dayStartUTC)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM attendance WHERE user_id = $1 AND session_id = $2`,
		userID, sessionID).Scan(&one)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &models.MarkAttendanceResult{SessionID: sessionID, AlreadyMarked: true}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attendance (id, user_id, session_id, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		uuid.New().String(), userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.MarkAttendanceResult{SessionID: sessionID, AlreadyMarked: false}, nil
}

// MarkAttendance is the manual path: it always creates a fresh trainer-less
// session with the given title and start, plus an attendance row for it, in
// one transaction. No deduplication on purpose - repeated calls record
// repeated ad-hoc entries.
func (s *Storage) MarkAttendance(ctx context.Context, memberEmail, title string, startAt time.Time) (string, error) {
	const op = "storage.MarkAttendance"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, memberEmail).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrMemberNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sessionID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, trainer_id, start_at, title, created_at)
		 VALUES ($1, NULL, $2, $3, NOW())`,
		sessionID, startAt, title)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attendance (id, user_id, session_id, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		uuid.New().String(), userID, sessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sessionID, nil
}

// ListTodayAttendance returns check-ins for sessions inside the given day
// window (any trainer), newest first, capped at 200 rows.
func (s *Storage) ListTodayAttendance(ctx context.Context, dayStartUTC, dayEndUTC time.Time) ([]*models.AttendanceRow, error) {
	const op = "storage.ListTodayAttendance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.first_name, u.last_name, u.email, a.created_at
			  FROM attendance a
			  JOIN users u ON u.id = a.user_id
			  JOIN sessions s ON s.id = a.session_id
			  WHERE s.start_at >= $1 AND s.start_at < $2
			  ORDER BY a.created_at DESC
			  LIMIT 200`
	rows, err := s.DB.QueryContext(ctx, query, dayStartUTC, dayEndUTC)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAttendanceRows(op, rows)
}

// ListRecentAttendance returns the newest check-ins across all sessions,
// bounded by the caller-supplied limit.
func (s *Storage) ListRecentAttendance(ctx context.Context, limit int) ([]*models.AttendanceRow, error) {
	const op = "storage.ListRecentAttendance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.first_name, u.last_name, u.email, a.created_at
			  FROM attendance a
			  JOIN users u ON u.id = a.user_id
			  ORDER BY a.created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAttendanceRows(op, rows)
}

func scanAttendanceRows(op string, rows *sql.Rows) ([]*models.AttendanceRow, error) {
	var result []*models.AttendanceRow
	for rows.Next() {
		var item models.AttendanceRow
		var lastName sql.NullString
		if err := rows.Scan(&item.FirstName, &lastName, &item.Email, &item.AttendanceAtUTC); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lastName.Valid {
			item.LastName = &lastName.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
