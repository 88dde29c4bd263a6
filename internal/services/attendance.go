package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/lib/timeutil"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// AttendanceRepository defines the storage methods the attendance service
// needs.
type AttendanceRepository interface {
	MarkAttendanceToday(ctx context.Context, memberEmail string,
		dayStartUTC, dayEndUTC time.Time) (*models.MarkAttendanceResult, error)
	MarkAttendance(ctx context.Context, memberEmail, title string, startAt time.Time) (string, error)
	ListTodayAttendance(ctx context.Context, dayStartUTC, dayEndUTC time.Time) ([]*models.AttendanceRow, error)
	ListRecentAttendance(ctx context.Context, limit int) ([]*models.AttendanceRow, error)
}

// AttendanceService implements daily and manual check-ins plus the
// attendance listings. The reference timezone and clock are injected so the
// day boundary never depends on the host machine.
type AttendanceService struct {
	repo        AttendanceRepository
	log         *slog.Logger
	loc         *time.Location
	now         func() time.Time
	recentLimit int
}

// NewAttendanceService creates a new AttendanceService. now may be nil, in
// which case time.Now is used.
func NewAttendanceService(repo AttendanceRepository, log *slog.Logger,
	loc *time.Location, now func() time.Time, recentLimit int) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{
		repo:        repo,
		log:         log,
		loc:         loc,
		now:         now,
		recentLimit: recentLimit,
	}
}

// MarkToday marks the member present for today's session. "Today" is the
// calendar day of the current instant in the reference timezone; a second
// call the same day reports AlreadyMarked without writing anything.
func (s *AttendanceService) MarkToday(ctx context.Context, email string) (*models.MarkAttendanceResult, error) {
	dayStart, dayEnd := timeutil.DayWindow(s.now(), s.loc)

	result, err := s.repo.MarkAttendanceToday(ctx, email, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	s.log.Info("marked attendance",
		slog.String("email", email),
		slog.String("session_id", result.SessionID),
		slog.Bool("already_marked", result.AlreadyMarked))
	return result, nil
}

// MarkDirect records an ad-hoc administrative check-in: a fresh trainer-less
// session with the given title and start time. Never deduplicated.
func (s *AttendanceService) MarkDirect(ctx context.Context, email, title string, startAt time.Time) (string, error) {
	sessionID, err := s.repo.MarkAttendance(ctx, email, title, startAt)
	if err != nil {
		return "", err
	}
	s.log.Info("marked attendance directly",
		slog.String("email", email),
		slog.String("session_id", sessionID))
	return sessionID, nil
}

// Today returns today's check-ins, newest first.
func (s *AttendanceService) Today(ctx context.Context) ([]*models.AttendanceRow, error) {
	dayStart, dayEnd := timeutil.DayWindow(s.now(), s.loc)
	return s.repo.ListTodayAttendance(ctx, dayStart, dayEnd)
}

// Recent returns the newest check-ins across all days; limit <= 0 falls back
// to the configured default.
func (s *AttendanceService) Recent(ctx context.Context, limit int) ([]*models.AttendanceRow, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.repo.ListRecentAttendance(ctx, limit)
}
