// Package list implements the member listing endpoint.
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

// Service lists members with their latest membership and plan.
type Service interface {
	List(ctx context.Context) ([]*models.MemberRow, error)
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
	const op = "handlers.member.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	members, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list members"))
		return
	}

	log.Info("listed members", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(members),
		"members": members,
	}))
}
