// Package recent implements the recent attendance listing endpoint.
package recent

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

// Service lists the newest check-ins across all days.
type Service interface {
	Recent(ctx context.Context, limit int) ([]*models.AttendanceRow, error)
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
	const op = "handlers.attendance.recent"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Omitted limit falls back to the configured default.
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error("invalid limit value", slog.String("limit", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	rows, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		log.Error("failed to list recent attendance", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list attendance"))
		return
	}

	log.Info("listed recent attendance", slog.Int("count", len(rows)))
	render.JSON(w, r, response.StatusOKWithData(rows))
}
