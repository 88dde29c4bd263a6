package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

type AttendanceRepoMock struct{ mock.Mock }

func (m *AttendanceRepoMock) MarkAttendanceToday(ctx context.Context, memberEmail string,
	dayStartUTC, dayEndUTC time.Time) (*models.MarkAttendanceResult, error) {
	args := m.Called(ctx, memberEmail, dayStartUTC, dayEndUTC)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarkAttendanceResult), args.Error(1)
}
func (m *AttendanceRepoMock) MarkAttendance(ctx context.Context, memberEmail, title string, startAt time.Time) (string, error) {
	args := m.Called(ctx, memberEmail, title, startAt)
	return args.String(0), args.Error(1)
}
func (m *AttendanceRepoMock) ListTodayAttendance(ctx context.Context, dayStartUTC, dayEndUTC time.Time) ([]*models.AttendanceRow, error) {
	args := m.Called(ctx, dayStartUTC, dayEndUTC)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRow), args.Error(1)
}
func (m *AttendanceRepoMock) ListRecentAttendance(ctx context.Context, limit int) ([]*models.AttendanceRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRow), args.Error(1)
}

func TestAttendanceService_MarkToday_DayWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Edmonton")
	require.NoError(t, err)

	// 2024-01-15 05:30 UTC is still 2024-01-14 22:30 in Edmonton (UTC-7).
	now := time.Date(2024, 1, 15, 5, 30, 0, 0, time.UTC)
	wantStart := time.Date(2024, 1, 14, 7, 0, 0, 0, time.UTC)
	wantEnd := wantStart.Add(24 * time.Hour)

	result := &models.MarkAttendanceResult{SessionID: "s1", AlreadyMarked: false}

	repo := new(AttendanceRepoMock)
	repo.On("MarkAttendanceToday", mock.Anything, "alice@example.com", wantStart, wantEnd).
		Return(result, nil).Once()

	svc := NewAttendanceService(repo, newNoopLogger(), loc, func() time.Time { return now }, 50)

	got, err := svc.MarkToday(context.Background(), "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, result, got)

	repo.AssertExpectations(t)
}

func TestAttendanceService_MarkToday_AlreadyMarked(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	result := &models.MarkAttendanceResult{SessionID: "s1", AlreadyMarked: true}

	repo := new(AttendanceRepoMock)
	repo.On("MarkAttendanceToday", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).
		Return(result, nil).Once()

	svc := NewAttendanceService(repo, newNoopLogger(), loc, func() time.Time { return now }, 50)

	got, err := svc.MarkToday(context.Background(), "alice@example.com")
	assert.NoError(t, err)
	assert.True(t, got.AlreadyMarked)

	repo.AssertExpectations(t)
}

func TestAttendanceService_MarkDirect(t *testing.T) {
	startAt := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMocks func(r *AttendanceRepoMock)
		wantID     string
		wantErr    bool
	}{
		{
			name: "success",
			setupMocks: func(r *AttendanceRepoMock) {
				r.On("MarkAttendance", mock.Anything, "alice@example.com", "Yoga", startAt).
					Return("s42", nil).Once()
			},
			wantID: "s42",
		},
		{
			name: "repo error",
			setupMocks: func(r *AttendanceRepoMock) {
				r.On("MarkAttendance", mock.Anything, "alice@example.com", "Yoga", startAt).
					Return("", errors.New("member not found")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(AttendanceRepoMock)
			svc := NewAttendanceService(repo, newNoopLogger(), time.UTC, nil, 50)

			tt.setupMocks(repo)

			got, err := svc.MarkDirect(context.Background(), "alice@example.com", "Yoga", startAt)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAttendanceService_Recent_LimitFallback(t *testing.T) {
	rows := []*models.AttendanceRow{{FirstName: "Alice", Email: "alice@example.com"}}

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "explicit limit", limit: 10, wantLimit: 10},
		{name: "zero falls back to default", limit: 0, wantLimit: 50},
		{name: "negative falls back to default", limit: -5, wantLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(AttendanceRepoMock)
			repo.On("ListRecentAttendance", mock.Anything, tt.wantLimit).Return(rows, nil).Once()

			svc := NewAttendanceService(repo, newNoopLogger(), time.UTC, nil, 50)

			got, err := svc.Recent(context.Background(), tt.limit)
			assert.NoError(t, err)
			assert.Equal(t, rows, got)

			repo.AssertExpectations(t)
		})
	}
}
