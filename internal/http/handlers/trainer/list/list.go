// Package list implements the trainer listing endpoint.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Service lists trainers ordered by name.
type Service interface {
	List(ctx context.Context) ([]*models.Trainer, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainer.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	trainers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list trainers", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list trainers"))
		return
	}

	log.Info("listed trainers", slog.Int("count", len(trainers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(trainers),
		"trainers": trainers,
	}))
}
