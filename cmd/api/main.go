package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/halcyon-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/halcyon-hr/payroll-backend-go/internal/handler/http"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/database"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/formula"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/halcyon-hr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/halcyon-hr/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/halcyon-hr/payroll-backend-go/internal/service/employee"
	payrollService "github.com/halcyon-hr/payroll-backend-go/internal/service/payroll"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-backend"),
	)

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	auditSink := postgresql.NewAuditRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	evaluator := formula.NewEvaluator()
	resolver := payrollService.NewResolver(evaluator)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, auditSink, logger)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		companyRepo,
		attendanceSvc,
		resolver,
		auditSink,
		logger,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		attendanceHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
