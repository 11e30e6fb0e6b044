package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/loomhr/workforce-backend-go/internal/config"
	"github.com/loomhr/workforce-backend-go/internal/domain/leave"
	appHTTP "github.com/loomhr/workforce-backend-go/internal/handler/http"
	"github.com/loomhr/workforce-backend-go/internal/pkg/clock"
	"github.com/loomhr/workforce-backend-go/internal/pkg/database"
	"github.com/loomhr/workforce-backend-go/internal/pkg/jwt"
	"github.com/loomhr/workforce-backend-go/internal/repository/postgresql"
	approvalService "github.com/loomhr/workforce-backend-go/internal/service/approval"
	attendanceService "github.com/loomhr/workforce-backend-go/internal/service/attendance"
	authService "github.com/loomhr/workforce-backend-go/internal/service/auth"
	leaveService "github.com/loomhr/workforce-backend-go/internal/service/leave"
	payrollService "github.com/loomhr/workforce-backend-go/internal/service/payroll"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	purchaseRepo := postgresql.NewPurchaseRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	if err := seedLeaveTypes(context.Background(), db, leaveTypeRepo); err != nil {
		log.Fatal("Failed to seed leave types:", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clk := clock.System()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(clk, attendanceRepo, employeeRepo)
	balanceSvc := leaveService.NewBalanceService(balanceRepo, leaveTypeRepo, employeeRepo, cfg.Leave.AllowNegativeBalance)
	requestSvc := leaveService.NewRequestService(clk, leaveRequestRepo, leaveTypeRepo, balanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo)
	workflowSvc := approvalService.NewWorkflowService(
		clk,
		purchaseRepo,
		leaveRequestRepo,
		payrollRepo,
		leaveTypeRepo,
		employeeRepo,
		balanceSvc,
		attendanceSvc,
	)
	facade := workforce.NewFacade(clk, attendanceSvc, balanceSvc, requestSvc, workflowSvc)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(facade, attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(facade, workflowSvc)
	purchaseHandler := appHTTP.NewPurchaseHandler(facade)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, workflowSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		purchaseHandler,
		payrollHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// seedLeaveTypes upserts the built-in leave types so accrual and quota
// checks can resolve them by code. Runs in one transaction so a restart
// never sees a half-seeded set.
func seedLeaveTypes(ctx context.Context, db *database.DB, repo leave.LeaveTypeRepository) error {
	types := []leave.LeaveType{
		{Code: leave.TypeAnnual, Name: "Annual Leave", HasQuota: true},
		{Code: leave.TypeSick, Name: "Sick Leave", HasQuota: false},
		{Code: leave.TypeUnpaid, Name: "Unpaid Leave", HasQuota: false},
	}

	return postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		for _, lt := range types {
			if _, err := repo.Create(ctx, lt); err != nil {
				return err
			}
		}
		return nil
	})
}
