package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/sniperthink/hrms-backend-go/internal/config"
	appHTTP "github.com/sniperthink/hrms-backend-go/internal/handler/http"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/cache"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/cron"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/database"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/email"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/jwt"
	"github.com/sniperthink/hrms-backend-go/internal/pkg/task"
	"github.com/sniperthink/hrms-backend-go/internal/repository/postgresql"
	advanceService "github.com/sniperthink/hrms-backend-go/internal/service/advance"
	attendanceService "github.com/sniperthink/hrms-backend-go/internal/service/attendance"
	employeeService "github.com/sniperthink/hrms-backend-go/internal/service/employee"
	payrollService "github.com/sniperthink/hrms-backend-go/internal/service/payroll"
	tenantService "github.com/sniperthink/hrms-backend-go/internal/service/tenant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// Redis only backs derived-view caches, so the server still runs without it.
	cacheClient, err := cache.NewClient(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, caching disabled", "error", err)
		cacheClient = nil
	}

	tenantRepo := postgresql.NewTenantRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	tasks := task.NewRunner()

	tenantSvc := tenantService.NewTenantService(db, tenantRepo, holidayRepo, JWTService, emailService, tasks)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, tenantRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, holidayRepo, cacheClient, tasks)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, employeeRepo, cacheClient, tasks)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceRepo, advanceRepo, holidayRepo, cacheClient, tasks)

	authHandler := appHTTP.NewAuthHandler(tenantSvc, JWTService)
	tenantHandler := appHTTP.NewTenantHandler(tenantSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		tenantHandler,
		employeeHandler,
		attendanceHandler,
		advanceHandler,
		payrollHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.RegisterPayrollJobs(scheduler, tenantRepo, payrollSvc)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
