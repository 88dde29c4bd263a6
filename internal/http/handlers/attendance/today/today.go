// Package today implements the today's attendance listing endpoint.
package today

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

// Service lists today's check-ins, newest first.
type Service interface {
	Today(ctx context.Context) ([]*models.AttendanceRow, error)
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
	const op = "handlers.attendance.today"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rows, err := h.service.Today(r.Context())
	if err != nil {
		log.Error("failed to list today's attendance", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list attendance"))
		return
	}

	log.Info("listed today's attendance", slog.Int("count", len(rows)))
	render.JSON(w, r, response.StatusOKWithData(rows))
}
