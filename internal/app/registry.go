package app

import (
	"time"

	"go-timeconsole/internal/alteration"
	"go-timeconsole/internal/auth"
	"go-timeconsole/internal/config"
	"go-timeconsole/internal/department"
	"go-timeconsole/internal/employee"
	"go-timeconsole/internal/middleware"
	"go-timeconsole/internal/payperiod"
	"go-timeconsole/internal/punch"
	"go-timeconsole/internal/rbac"
	"go-timeconsole/internal/rbac/infra"
	"go-timeconsole/internal/rbac/rbac_http"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/timezone"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const idempotencyTTL = 24 * time.Hour

// services are shared by the API and the consumer.
type services struct {
	rbac       rbac.Service
	employees  employee.Service
	punches    punch.Service
	alteration alteration.Service
	payPeriods payperiod.Service
	department department.Service
}

func buildServices(cfg config.Config, inf *platform, logger *zap.Logger) (*services, error) {
	t := cfg.Tables

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(inf.store, rbac.Tables{AppAccess: t.UserAppAccess, Permissions: t.UserPermissions}, inf.pager)
	employeeRepo := employee.NewRepository(inf.store, t.Employees, t.EmployeeNameField, inf.pager)
	punchRepo := punch.NewRepository(inf.store, t.Punches, inf.pager)
	alterationRepo := alteration.NewRepository(inf.store, t.Alterations, inf.pager)
	payPeriodRepo := payperiod.NewRepository(inf.store, payperiod.Tables{
		PayPeriods: t.PayPeriods,
		TimeCards:  t.TimeCards,
		Templates:  t.Templates,
	}, inf.pager, logger)
	departmentRepo := department.NewRepository(inf.store, t.Departments, inf.pager)
	zones := timezone.NewStoreLookup(inf.store, t.Timezones)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, inf.cache, cfg.CacheTTL.Permissions, logger)

	// --- Services ---
	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, err
	}
	employeeService := employee.NewService(employeeRepo, inf.cache, cfg.CacheTTL.Names, logger)
	aggregator := payperiod.NewAggregator(payPeriodRepo, punchRepo, employeeService, logger)

	alterationService := alteration.NewService(alterationRepo, punchRepo, rbacService, inf.cache, inf.outbox, zones, alteration.Config{
		BulkConcurrency: cfg.BulkConcurrency,
		LockTTL:         cfg.DecisionLockTTL,
	}, logger)
	payPeriodService := payperiod.NewService(payPeriodRepo, aggregator, cache.NewAside(inf.cache, logger), payperiod.Config{
		WindowLimit: cfg.WindowLimit,
		Concurrency: cfg.AggregateConcurrency,
		TotalsTTL:   cfg.CacheTTL.PeriodTotals,
		Location:    loc,
	}, logger)

	return &services{
		rbac:       rbacService,
		employees:  employeeService,
		punches:    punch.NewService(punchRepo, zones, employeeService, logger),
		alteration: alterationService,
		payPeriods: payPeriodService,
		department: department.NewService(departmentRepo, inf.cache, cfg.CacheTTL.Departments, logger),
	}, nil
}

func registerModules(router *gin.Engine, cfg config.Config, inf *platform, logger *zap.Logger) error {
	svc, err := buildServices(cfg, inf, logger)
	if err != nil {
		return err
	}

	// --- Handlers ---
	punchHandler := punch.NewHandler(svc.punches, logger)
	alterationHandler := alteration.NewHandler(svc.alteration, logger)
	payPeriodHandler := payperiod.NewHandler(svc.payPeriods, logger)
	departmentHandler := department.NewHandler(svc.department, logger)
	employeeHandler := employee.NewHandler(svc.employees, logger)
	rbacHandler := rbac.NewHandler(svc.rbac, logger)

	// --- Middleware ---
	authMW := middleware.AuthMiddleware(auth.NewJWTVerifier(cfg.JWTSecret))
	idempotency := middleware.Idempotency(inf.cache, idempotencyTTL, cfg.DecisionLockTTL)

	router.Use(middleware.RequestID())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		authMW,
		middleware.ContextLogger(logger),
		middleware.RateLimitByPrincipal(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst),
	)
	{
		punch.RegisterRoutes(api, punchHandler, authMW, svc.rbac)
		alteration.RegisterRoutes(api, alterationHandler, authMW, svc.rbac, idempotency)
		payperiod.RegisterRoutes(api, payPeriodHandler, authMW, svc.rbac)
		department.RegisterRoutes(api, departmentHandler, authMW, svc.rbac)
		employee.RegisterRoutes(api, employeeHandler, authMW, svc.rbac)
		rbac_http.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
