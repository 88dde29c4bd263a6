// Package markdirect implements the manual check-in endpoint used for
// administrative entries.
package markdirect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Service records an ad-hoc check-in against a fresh session.
type Service interface {
	MarkDirect(ctx context.Context, email, title string, startAt time.Time) (string, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.markdirect"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMarkAttendanceDirect
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		log.Error("invalid start_at value", slog.String("start_at", req.StartAt))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_at must be RFC 3339"))
		return
	}

	sessionID, err := h.service.MarkDirect(r.Context(), req.Email, req.Title, startAt)
	switch {
	case errors.Is(err, repository.ErrMemberNotFound):
		log.Error("member not found", slog.String("email", req.Email))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	case err != nil:
		log.Error("failed to mark attendance", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark attendance"))
		return
	}

	log.Info("marked attendance directly",
		slog.String("email", req.Email),
		slog.String("session_id", sessionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]string{"session_id": sessionID}))
}
