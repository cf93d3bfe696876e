package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/identity"
	"github.com/wims/backend/internal/infrastructure/logger"
	"github.com/wims/backend/internal/interfaces/http/handler"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Storage  *handler.StorageHandler
	Stock    *handler.StockHandler
	Order    *handler.OrderHandler
	Customer *handler.CustomerHandler
	Report   *handler.ReportHandler
	Health   *handler.HealthHandler
}

// New builds the gin engine with all routes and middleware mounted
func New(h Handlers, auth *identity.AuthService, log *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", h.Health.Check)

	v1 := engine.Group("/api/v1")

	public := v1.Group("/auth")
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.Auth(auth))

	session := protected.Group("/auth")
	{
		session.POST("/logout", h.Auth.Logout)
		session.POST("/change-password", h.Auth.ChangePassword)
		session.GET("/me", h.Auth.Me)
	}

	categories := protected.Group("/categories")
	{
		categories.POST("", h.Catalog.CreateCategory)
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	items := protected.Group("/items")
	{
		items.POST("", h.Catalog.CreateItem)
		items.GET("", h.Catalog.ListItems)
		items.GET("/:id", h.Catalog.GetItem)
		items.PUT("/:id", h.Catalog.UpdateItem)
		items.DELETE("/:id", h.Catalog.DeleteItem)
		items.GET("/:id/stock", h.Stock.TotalOnHand)
		items.GET("/:id/movements", h.Stock.Movements)
	}

	warehouses := protected.Group("/warehouses")
	{
		warehouses.POST("", h.Storage.CreateWarehouse)
		warehouses.GET("", h.Storage.ListWarehouses)
		warehouses.GET("/:id", h.Storage.GetWarehouse)
		warehouses.PUT("/:id", h.Storage.UpdateWarehouse)
		warehouses.DELETE("/:id", h.Storage.DeactivateWarehouse)
	}

	blocks := protected.Group("/blocks")
	{
		blocks.POST("", h.Storage.CreateBlock)
		blocks.GET("", h.Storage.ListBlocks)
		blocks.GET("/:id", h.Storage.GetBlock)
		blocks.PUT("/:id/capacity", h.Storage.ResizeBlock)
		blocks.DELETE("/:id", h.Storage.DeleteBlock)
		blocks.POST("/:id/reconcile", h.Stock.Reconcile)
	}

	stock := protected.Group("/stock")
	{
		stock.POST("/plan", h.Stock.Plan)
		stock.POST("/inbound", h.Stock.Inbound)
		stock.POST("/outbound", h.Stock.Outbound)
		stock.GET("/levels", h.Stock.Levels)
		stock.GET("/summary", h.Stock.Summary)
	}

	orders := protected.Group("/orders")
	{
		orders.POST("", h.Order.Place)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/ship", h.Order.Ship)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	customers := protected.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	reports := protected.Group("/reports")
	{
		reports.POST("/generate", h.Report.Generate)
		reports.GET("/daily", h.Report.ListByDate)
		reports.GET("/range", h.Report.ListByRange)
		reports.GET("/block-profit", h.Report.BlockProfit)
		reports.GET("/weekly-sales", h.Report.WeeklySales)
		reports.GET("/export", h.Report.ExportCSV)
	}

	return engine
}
