package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workhive-crm/crm-backend-go/internal/handler/http/middleware"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crm-backend"),
		slog.String("env", cfg.Env),
	)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires authentication; token issuance lives in the
		// account service.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/submit", attendanceHandler.Submit)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/{id}", attendanceHandler.Get)
				r.Get("/{id}/logs", attendanceHandler.GetLogs)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/team", attendanceHandler.ListTeam)
					r.Post("/{id}/manager-decision", attendanceHandler.ManagerDecision)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFounder)
					r.Post("/{id}/admin-decision", attendanceHandler.AdminDecision)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireFounder)
				r.Get("/summary", payrollHandler.GetMonth)
				r.Get("/export", payrollHandler.ExportCSV)
			})

			r.Get("/notifications/stream", notificationHandler.Stream)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
