package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/workhive-crm/crm-backend-go/internal/config"
	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
	appHTTP "github.com/workhive-crm/crm-backend-go/internal/handler/http"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/jwt"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/sse"
	"github.com/workhive-crm/crm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workhive-crm/crm-backend-go/internal/service/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/service/notification"
	payrollService "github.com/workhive-crm/crm-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Error resolving timezone: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	roleResolver := postgresql.NewRoleResolver(db)
	projectRepo := postgresql.NewProjectRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	attendanceLogRepo := postgresql.NewAttendanceLogRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	hub := sse.NewHub()
	notifier := notification.NewSSENotifier(hub)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		attendanceLogRepo,
		projectRepo,
		roleResolver,
		notifier,
		attendanceService.Settings{
			Location:              location,
			DefaultGeofenceRadius: cfg.Payroll.DefaultGeofenceRadius,
		},
	)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		projectRepo,
		userRepo,
		roleResolver,
		payroll.Config{
			DefaultTeamShare:    cfg.Payroll.DefaultTeamShare,
			DefaultExpectedDays: cfg.Payroll.DefaultExpectedDays,
			ManagerMultiplier:   cfg.Payroll.ManagerMultiplier,
		},
		nil,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	notificationHandler := appHTTP.NewNotificationHandler(hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		attendanceHandler,
		payrollHandler,
		notificationHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
