// Package services contains the business logic between the HTTP handlers
// and the PostgreSQL storage: plan listing with caching, member
// registration, trainer management and attendance marking.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// PlanRepository defines the storage methods the plan service needs.
type PlanRepository interface {
	// ListPlans returns the active plans ordered by price.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
}

// Cache describes the caching methods used by the services.
type Cache interface {
	// Get tries to fetch a value from the cache by key.
	Get(key string, result any) (bool, error)
	// Set stores a value in the cache with a TTL.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate removes a value from the cache by key.
	Invalidate(key string) error
}

const planCacheKey = "plans:active"

// PlanService serves the active plan listing. Plans are read-only to this
// service, which makes them the one safe thing to cache.
type PlanService struct {
	repo     PlanRepository
	cache    Cache
	log      *slog.Logger
	cacheTTL time.Duration
}

// NewPlanService creates a new PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger, cacheTTL time.Duration) *PlanService {
	return &PlanService{
		repo:     repo,
		cache:    cache,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

// List returns the active plans, cheapest first, from cache when possible.
// Cache failures are logged and never surface to the caller.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(planCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(planCacheKey, plans, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", planCacheKey), sl.Err(err))
	}
	return plans, nil
}
