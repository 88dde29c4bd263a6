// Package gym assembles the admin API: storage, migrations, cache and the
// HTTP server with its routes.
package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-management/internal/cache"
	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/migrations"
	"github.com/magabrotheeeer/gym-management/internal/services"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// The attendance day is derived in a fixed reference timezone, never in
	// the host timezone.
	loc, err := time.LoadLocation(cfg.Gym.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load gym timezone %q: %w", cfg.Gym.Timezone, err)
	}

	planService := services.NewPlanService(db, cacheRedis, logger, cfg.Gym.PlanCacheTTL)
	memberService := services.NewMemberService(db, logger, cfg.Gym.CurrencyCode)
	trainerService := services.NewTrainerService(db, logger)
	attendanceService := services.NewAttendanceService(db, logger, loc, nil, cfg.Gym.RecentLimit)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, planService, memberService, trainerService, attendanceService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  *cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
