package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sniperthink/hrms-backend-go/internal/handler/http/middleware"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	tenantHandler TenantHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	advanceHandler AdvanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-sniperthink"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/tenant", func(r chi.Router) {
				r.Get("/settings", tenantHandler.GetSettings)
				r.Get("/credits", tenantHandler.GetCredits)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/settings", tenantHandler.UpdateSettings)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Get("/{id}", employeeHandler.GetEmployee)
				r.Put("/{id}", employeeHandler.UpdateEmployee)
				r.Delete("/{id}", employeeHandler.DeactivateEmployee)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetByPeriod)
				r.Post("/", attendanceHandler.UpsertRecords)
				r.Get("/months", attendanceHandler.GetMonthsWithData)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListHolidays)
				r.Post("/", attendanceHandler.CreateHoliday)
				r.Delete("/{id}", attendanceHandler.DeleteHoliday)
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", advanceHandler.ListAdvances)
				r.Post("/", advanceHandler.CreateAdvance)
				r.Get("/{id}", advanceHandler.GetAdvance)
				r.Put("/{id}", advanceHandler.UpdateAdvance)
				r.Delete("/{id}", advanceHandler.DeleteAdvance)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/save-direct", payrollHandler.SaveDirect)
				r.Post("/mark-paid", payrollHandler.SetPaidStatus)
				r.Get("/overview", payrollHandler.GetOverview)
				r.Patch("/salaries/{id}/advance-deduction", payrollHandler.UpdateAdvanceDeduction)

				r.Route("/periods", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPeriods)
					r.Post("/", payrollHandler.CreatePeriod)
					r.Get("/{id}", payrollHandler.GetPeriodDetail)
					r.Post("/{id}/lock", payrollHandler.LockPeriod)
					r.Post("/{id}/unlock", payrollHandler.UnlockPeriod)
					r.Delete("/{id}", payrollHandler.DeletePeriod)
				})
			})
		})
	})
	return r
}
