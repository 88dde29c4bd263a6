// Package mark implements the daily check-in endpoint.
package mark

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Service marks the member present for today's session.
type Service interface {
	MarkToday(ctx context.Context, email string) (*models.MarkAttendanceResult, error)
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
	const op = "handlers.attendance.mark"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMarkAttendance
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

	result, err := h.service.MarkToday(r.Context(), req.Email)
	switch {
	case errors.Is(err, repository.ErrMemberNotFound):
		log.Error("member not found", slog.String("email", req.Email))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	case errors.Is(err, repository.ErrMembershipNotActive):
		log.Error("membership not active", slog.String("email", req.Email))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("membership is not active"))
		return
	case err != nil:
		log.Error("failed to mark attendance", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark attendance"))
		return
	}

	log.Info("marked attendance",
		slog.String("email", req.Email),
		slog.Bool("already_marked", result.AlreadyMarked))
	render.JSON(w, r, response.StatusOKWithData(result))
}
