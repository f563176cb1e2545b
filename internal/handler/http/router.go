package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	env string,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/records/{userID}", attendanceHandler.GetUserRecords)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetSettings)
				r.Put("/", attendanceHandler.UpdateSettings)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListHolidays)
			r.Post("/", attendanceHandler.AddHoliday)
			r.Delete("/{id}", attendanceHandler.RemoveHoliday)
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", leaveHandler.Submit)
			r.Get("/{id}", leaveHandler.Get)
			r.Post("/{id}/approve", leaveHandler.Approve)
			r.Post("/{id}/reject", leaveHandler.Reject)

			r.Get("/user/{userID}", leaveHandler.ListByUser)
			r.Get("/pending/{approverID}", leaveHandler.ListPendingForApprover)
		})

		r.Get("/leave-balance/{userID}", leaveHandler.GetBalance)

		r.Route("/leave-approval-policy", func(r chi.Router) {
			r.Get("/", leaveHandler.GetApprovalPolicy)
			r.Put("/", leaveHandler.UpdateApprovalPolicy)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/snapshot", dashboardHandler.GetSnapshot)
			r.Get("/trends/attendance", dashboardHandler.GetAttendanceTrend)
			r.Get("/trends/productivity", dashboardHandler.GetProductivityTrend)
			r.Get("/site-rates", dashboardHandler.GetSiteRates)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/muster", reportHandler.GenerateMuster)
			r.Post("/custom-log", reportHandler.GenerateCustomLog)
		})
	})

	return r
}
