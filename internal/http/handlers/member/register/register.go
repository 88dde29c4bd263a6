// Package register implements the member registration endpoint.
package register

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

// Service registers a member: user get-or-create, membership and pending
// payment in one transaction.
type Service interface {
	Register(ctx context.Context, req models.DummyRegisterMember) (*models.RegisterResult, error)
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
	const op = "handlers.member.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegisterMember
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

	result, err := h.service.Register(r.Context(), req)
	switch {
	case errors.Is(err, repository.ErrPlanNotFound):
		log.Error("plan not found", slog.String("plan_id", req.PlanID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("plan not found"))
		return
	case errors.Is(err, repository.ErrDuplicateActiveMembership):
		log.Error("member already has an active membership", slog.String("email", req.Email))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("member already has an active membership"))
		return
	case err != nil:
		log.Error("failed to register member", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register member"))
		return
	}

	log.Info("member registered", slog.String("user_id", result.UserID))
	render.JSON(w, r, response.StatusOKWithData(result))
}
