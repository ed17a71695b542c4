package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/diyath7/small-shop-system/internal/config"
	"github.com/diyath7/small-shop-system/internal/handler"
	"github.com/diyath7/small-shop-system/internal/middleware"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"
	"github.com/diyath7/small-shop-system/internal/service"
	"github.com/diyath7/small-shop-system/internal/worker"
)

// Deps bundles the external resources the router needs. Mailer is only used
// by the worker pool, which main owns; it is not wired here.
type Deps struct {
	DB  *gorm.DB
	RDB *redis.Client
	Cfg *config.Config
}

// New builds the Gin engine with the full middleware chain and every route
// group wired to its service.
func New(deps Deps) *gin.Engine {
	if deps.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(300, time.Minute),
	)

	// Repositories
	productRepo := repository.NewProductRepository(deps.DB)
	supplierRepo := repository.NewSupplierRepository(deps.DB)
	batchRepo := repository.NewBatchRepository(deps.DB)
	invoiceRepo := repository.NewInvoiceRepository(deps.DB)
	writeOffRepo := repository.NewWriteOffRepository(deps.DB)
	inventoryRepo := repository.NewInventoryRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)

	// Services
	dispatcher := worker.NewDispatcher(deps.RDB)
	productSvc := service.NewProductService(productRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	batchSvc := service.NewBatchService(batchRepo, productRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, batchRepo, productRepo, dispatcher)
	stockSvc := service.NewStockService(batchRepo, writeOffRepo, inventoryRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, deps.RDB)
	authSvc := service.NewAuthService(userRepo, deps.Cfg)

	// Handlers
	healthH := handler.NewHealthHandler(deps.DB)
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	batchH := handler.NewBatchHandler(batchSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	stockH := handler.NewStockHandler(stockSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)

	r.GET("/health", healthH.Health)

	if deps.Cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	v1.POST("/auth/login", middleware.RateLimiter(10, time.Minute), authH.Login)

	auth := v1.Group("")
	auth.Use(middleware.JWTAuth(deps.Cfg.JWTSecret))

	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleCashier)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Selling: every role can raise invoices and look them up.
	invoices := auth.Group("/invoices", anyRole)
	{
		invoices.POST("", invoiceH.Create)
		invoices.GET("", invoiceH.List)
		invoices.GET("/range", invoiceH.ListRange)
		invoices.GET("/:id", invoiceH.Get)
	}

	// Catalog: reads for everyone, writes for managers.
	products := auth.Group("/products")
	{
		products.GET("", anyRole, productH.List)
		products.GET("/:id", anyRole, productH.Get)
		products.POST("", managers, productH.Create)
		products.PUT("/:id", managers, productH.Update)
	}

	suppliers := auth.Group("/suppliers", managers)
	{
		suppliers.GET("", supplierH.List)
		suppliers.POST("", supplierH.Create)
		suppliers.PUT("/:id", supplierH.Update)
		suppliers.DELETE("/:id", supplierH.Delete)
	}

	// Purchasing.
	batches := auth.Group("/batches", managers)
	{
		batches.POST("", batchH.Create)
		batches.GET("/recent", batchH.ListRecent)
		batches.GET("/next-supplier-invoice", batchH.NextSupplierInvoice)
		batches.GET("/supplier-summary", batchH.SupplierSummary)
		batches.GET("/supplier-unpaid", batchH.UnpaidBySupplier)
		batches.POST("/mark-paid", batchH.MarkPaid)
	}

	// Stock control. Write-offs destroy value, so they are admin only.
	stock := auth.Group("/stock")
	{
		stock.POST("/write-off", adminOnly, stockH.WriteOff)
		stock.GET("/write-offs", managers, stockH.ListWriteOffs)
		stock.GET("/summary", managers, stockH.Summary)
		stock.GET("/expired", managers, stockH.Expired)
	}

	inventory := auth.Group("/inventory", anyRole)
	{
		inventory.GET("", inventoryH.FullView)
		inventory.GET("/low-stock", inventoryH.LowStock)
		inventory.GET("/expiring", inventoryH.Expiring)
	}

	return r
}
