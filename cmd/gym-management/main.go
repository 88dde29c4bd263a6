// Package main contains the entry point of the gym administration API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/gym-management/internal/app/gym"
	"github.com/magabrotheeeer/gym-management/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting gym-management", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := gym.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize gym app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("gym app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("gym app stopped gracefully")
}
