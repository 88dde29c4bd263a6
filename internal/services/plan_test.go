package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

type PlanRepoMock struct{ mock.Mock }

func (m *PlanRepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPlanService_List(t *testing.T) {
	plans := []*models.Plan{
		{ID: "p1", Name: "Basic", PriceCents: 4500, DurationMonths: 1},
		{ID: "p2", Name: "Standard", PriceCents: 9000, DurationMonths: 3},
	}

	tests := []struct {
		name       string
		setupMocks func(r *PlanRepoMock, c *CacheMock)
		want       []*models.Plan
		wantErr    bool
	}{
		{
			name: "cache miss hits repo and caches",
			setupMocks: func(r *PlanRepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, nil).Once()
				r.On("ListPlans", mock.Anything).Return(plans, nil).Once()
				c.On("Set", "plans:active", plans, 10*time.Minute).Return(nil).Once()
			},
			want: plans,
		},
		{
			name: "cache hit skips repo",
			setupMocks: func(_ *PlanRepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(true, nil).Once()
			},
			want: nil,
		},
		{
			name: "cache get error falls through to repo",
			setupMocks: func(r *PlanRepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, errors.New("redis down")).Once()
				r.On("ListPlans", mock.Anything).Return(plans, nil).Once()
				c.On("Set", "plans:active", plans, 10*time.Minute).Return(nil).Once()
			},
			want: plans,
		},
		{
			name: "cache set error still returns plans",
			setupMocks: func(r *PlanRepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, nil).Once()
				r.On("ListPlans", mock.Anything).Return(plans, nil).Once()
				c.On("Set", "plans:active", plans, 10*time.Minute).Return(errors.New("redis down")).Once()
			},
			want: plans,
		},
		{
			name: "repo error",
			setupMocks: func(r *PlanRepoMock, c *CacheMock) {
				c.On("Get", "plans:active", mock.Anything).Return(false, nil).Once()
				r.On("ListPlans", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(PlanRepoMock)
			cache := new(CacheMock)
			svc := NewPlanService(repo, cache, newNoopLogger(), 10*time.Minute)

			tt.setupMocks(repo, cache)

			got, err := svc.List(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
