package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rosterline/attendance-engine-go/internal/config"
	appHTTP "github.com/rosterline/attendance-engine-go/internal/handler/http"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
	"github.com/rosterline/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/rosterline/attendance-engine-go/internal/service/attendance"
	dashboardService "github.com/rosterline/attendance-engine-go/internal/service/dashboard"
	leaveService "github.com/rosterline/attendance-engine-go/internal/service/leave"
	reportService "github.com/rosterline/attendance-engine-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	eventRepo := postgresql.NewEventRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	approvalPolicyRepo := postgresql.NewApprovalPolicyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, settingsRepo, holidayRepo, leaveRequestRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, userRepo, approvalPolicyRepo, settingsRepo)
	dashboardSvc := dashboardService.NewDashboardService(eventRepo, settingsRepo, holidayRepo, leaveRequestRepo, userRepo, cfg.Engine.MaxWorkers)
	reportSvc := reportService.NewReportService(eventRepo, settingsRepo, holidayRepo, leaveRequestRepo, userRepo, cfg.Engine.MaxWorkers)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		attendanceHandler,
		leaveHandler,
		dashboardHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
