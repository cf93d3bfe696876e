package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/wims/backend/internal/application/catalog"
	identityapp "github.com/wims/backend/internal/application/identity"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	partnerapp "github.com/wims/backend/internal/application/partner"
	reportapp "github.com/wims/backend/internal/application/report"
	tradeapp "github.com/wims/backend/internal/application/trade"
	"github.com/wims/backend/internal/application/storage"
	"github.com/wims/backend/internal/infrastructure/auth"
	"github.com/wims/backend/internal/infrastructure/config"
	"github.com/wims/backend/internal/infrastructure/logger"
	"github.com/wims/backend/internal/infrastructure/persistence"
	"github.com/wims/backend/internal/infrastructure/scheduler"
	"github.com/wims/backend/internal/interfaces/http/handler"
	"github.com/wims/backend/internal/interfaces/http/middleware"
	"github.com/wims/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close() //nolint:errcheck

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	blockRepo := persistence.NewGormBlockRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	stockInRepo := persistence.NewGormStockInRepository(db.DB)
	stockOutRepo := persistence.NewGormStockOutRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reportRepo := persistence.NewGormProfitLossRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Services
	issuer := auth.NewJWTIssuer(&cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(rdb)
	authService := identityapp.NewAuthService(userRepo, issuer, blacklist)
	catalogService := catalogapp.NewCatalogService(categoryRepo, itemRepo)
	storageService := storage.NewStorageService(warehouseRepo, blockRepo)
	stockService := inventoryapp.NewStockService(
		persistence.NewGormStockTransactionScope(db.DB), itemRepo, blockRepo)
	stockQueries := inventoryapp.NewStockQueryService(inventoryRepo, stockInRepo, stockOutRepo)
	orderService := tradeapp.NewOrderService(
		persistence.NewGormOrderTransactionScope(db.DB), itemRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	reportService := reportapp.NewProfitLossService(
		reportRepo, stockInRepo, stockOutRepo, itemRepo, orderRepo, log)

	if err := middleware.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, log),
		Catalog:  handler.NewCatalogHandler(catalogService, log),
		Storage:  handler.NewStorageHandler(storageService, log),
		Stock:    handler.NewStockHandler(stockService, stockQueries, log),
		Order:    handler.NewOrderHandler(orderService, log),
		Customer: handler.NewCustomerHandler(customerService, log),
		Report:   handler.NewReportHandler(reportService, log),
		Health:   handler.NewHealthHandler(db, rdb, log),
	}
	engine := router.New(handlers, authService, log, cfg.IsProduction())

	// Background daily aggregation
	var reportScheduler *scheduler.ReportScheduler
	if cfg.Scheduler.Enabled {
		schedCfg := scheduler.DefaultConfig()
		schedCfg.Hour = cfg.Scheduler.ReportHour
		reportScheduler = scheduler.NewReportScheduler(
			schedCfg, reportService, persistence.NewGormTenantSource(db.DB), log)
		if err := reportScheduler.Start(context.Background()); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()

	if reportScheduler != nil {
		if err := reportScheduler.Stop(shutdownCtx); err != nil {
			log.Warn("scheduler shutdown", zap.Error(err))
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
