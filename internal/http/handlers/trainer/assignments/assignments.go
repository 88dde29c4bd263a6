// Package assignments implements the trainer assignments listing endpoint.
package assignments

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Service lists trainer/member assignment pairs.
type Service interface {
	Assignments(ctx context.Context, onlyActive bool) ([]*models.TrainerAssignment, error)
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
	const op = "handlers.trainer.assignments"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Filter defaults to active memberships only.
	onlyActive := true
	if raw := r.URL.Query().Get("only_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Error("invalid only_active value", slog.String("only_active", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid only_active value"))
			return
		}
		onlyActive = parsed
	}

	assignments, err := h.service.Assignments(r.Context(), onlyActive)
	if err != nil {
		log.Error("failed to list assignments", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list assignments"))
		return
	}

	log.Info("listed assignments", slog.Int("count", len(assignments)))
	render.JSON(w, r, response.StatusOKWithData(assignments))
}
