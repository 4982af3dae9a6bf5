package router

import (
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/config"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/handler"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/middleware"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	stockSvc := service.NewStockService(productRepo, movementRepo)
	billingSvc := service.NewBillingService(billRepo, catalogRepo, productRepo, stockSvc, cfg.StrictPayments)
	paymentSvc := service.NewPaymentService(paymentRepo, billRepo, dispatcher, cfg.StrictPayments)
	expenseSvc := service.NewExpenseService(expenseRepo)
	dashboardSvc := service.NewDashboardService(billRepo, paymentRepo, expenseRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	stockH := handler.NewStockHandler(stockSvc, cfg.ExpiryWindowDays)
	billsH := handler.NewBillsHandler(billingSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes — every query below is scoped by the token's salon_id
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	allRoles := middleware.RequireRole(middleware.RoleStaff, middleware.RoleSalonAdmin, middleware.RoleSuperAdmin)
	adminOnly := middleware.RequireRole(middleware.RoleSalonAdmin, middleware.RoleSuperAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		stock := v1.Group("/stock")
		{
			stock.POST("/movements", allRoles, stockH.ApplyMovement)
			stock.GET("/movements", allRoles, stockH.ListMovements)
			stock.GET("/low", allRoles, stockH.LowStock)
			stock.GET("/expiring", allRoles, stockH.ExpiringSoon)
			stock.POST("/reconcile", adminOnly, stockH.Reconcile)
		}

		bills := v1.Group("/bills")
		{
			bills.POST("", allRoles, billsH.CreateBill)
			bills.GET("", allRoles, billsH.ListBills)
			bills.GET("/:id", allRoles, billsH.GetBill)
			bills.GET("/:id/payments", allRoles, paymentsH.ListBillPayments)
			// Administrative override — bypasses payment reconciliation
			bills.PATCH("/:id/payment", adminOnly, billsH.UpdatePaymentFields)
		}

		v1.POST("/payments", allRoles, paymentsH.RecordPayment)

		expenses := v1.Group("/expenses", adminOnly)
		{
			expenses.POST("", expensesH.CreateExpense)
			expenses.GET("", expensesH.ListExpenses)
			expenses.DELETE("/:id", expensesH.CancelExpense)
		}

		v1.GET("/dashboard", adminOnly, dashboardH.Dashboard)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
