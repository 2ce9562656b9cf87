package app

import (
	"go-hrms/internal/auth"
	"go-hrms/internal/balance"
	"go-hrms/internal/docstore"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/rbac"
	"go-hrms/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	store docstore.Client,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	balanceRepo := balance.NewRepository(store)
	employeeRepo := employee.NewRepository(store)
	leaveRepo := leave.NewRepository(store)
	outboxRepo := kafka.NewOutboxRepository(store)
	payrollRepo := payroll.NewRepository(store)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(zap.L())
	if err != nil {
		return err
	}

	// --- Services ---
	ledger := balance.NewLedger(balanceRepo)
	authService := auth.NewService(employeeRepo)
	leaveService := leave.NewService(leaveRepo, ledger, leave.NewOutboxPublisher(outboxRepo))
	payrollService := payroll.NewService(payrollRepo)
	employeeService := employee.NewService(
		employeeRepo,
		ledger,
		employee.NewOutboxPublisher(outboxRepo),
		payrollService,
	)
	reportService := report.NewService(leaveRepo, employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	balanceHandler := balance.NewHandler(ledger)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return nil
}
