package gym

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/gym-management/internal/http/handlers/attendance/mark"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/attendance/markdirect"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/attendance/recent"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/attendance/today"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/health"
	memberlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/member/register"
	planlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/plan/list"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/assign"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/assignments"
	trainercreate "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/create"
	trainerlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/list"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/unassign"
	"github.com/magabrotheeeer/gym-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-management/internal/services"
)

// RegisterRoutes registers all application routes.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	planService *services.PlanService,
	memberService *services.MemberService,
	trainerService *services.TrainerService,
	attendanceService *services.AttendanceService) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/plans", planlist.New(logger, planService).ServeHTTP)

		r.Get("/members", memberlist.New(logger, memberService).ServeHTTP)
		r.Post("/members/register", register.New(logger, memberService).ServeHTTP)

		r.Get("/trainers", trainerlist.New(logger, trainerService).ServeHTTP)
		r.Post("/trainers", trainercreate.New(logger, trainerService).ServeHTTP)
		r.Post("/trainers/assign", assign.New(logger, trainerService).ServeHTTP)
		r.Post("/trainers/unassign", unassign.New(logger, trainerService).ServeHTTP)
		r.Get("/trainers/assignments", assignments.New(logger, trainerService).ServeHTTP)

		r.Post("/attendance/mark", mark.New(logger, attendanceService).ServeHTTP)
		r.Post("/attendance/mark-direct", markdirect.New(logger, attendanceService).ServeHTTP)
		r.Get("/attendance/today", today.New(logger, attendanceService).ServeHTTP)
		r.Get("/attendance/recent", recent.New(logger, attendanceService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health.New(logger).ServeHTTP)
}
