package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	companyapp "github.com/backoffice/backend/internal/application/companies"
	customerapp "github.com/backoffice/backend/internal/application/customers"
	integrationapp "github.com/backoffice/backend/internal/application/integration"
	importapp "github.com/backoffice/backend/internal/application/orderimport"
	orderapp "github.com/backoffice/backend/internal/application/orders"
	productapp "github.com/backoffice/backend/internal/application/products"
	syncapp "github.com/backoffice/backend/internal/application/sync"
	"github.com/backoffice/backend/internal/infrastructure/auth"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/ecommerce"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/backoffice/backend/internal/infrastructure/shiprocket"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/backoffice/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting back-office server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	importScope := persistence.NewGormImportScope(db.DB)

	// Platform clients
	gatewayFactory := ecommerce.NewShopifyFactory(ecommerce.Config{
		APIVersion:     cfg.Storefront.APIVersion,
		TimeoutSeconds: cfg.Storefront.TimeoutSeconds,
		CallsPerSecond: cfg.Storefront.CallsPerSecond,
		PageSize:       cfg.Storefront.PageSize,
	}, log)
	shippingClient := shiprocket.NewClient(shiprocket.Config{
		BaseURL:        cfg.Shipping.BaseURL,
		TimeoutSeconds: cfg.Shipping.TimeoutSeconds,
	}, log)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	companyService := companyapp.NewService(companyRepo, log)
	customerService := customerapp.NewService(customerRepo, log)
	productService := productapp.NewService(productRepo, log)
	orderService := orderapp.NewService(orderRepo, log)
	integrationService := integrationapp.NewService(companyRepo, gatewayFactory, shippingClient, log)
	customerSyncService := syncapp.NewCustomerSyncService(companyRepo, customerRepo, gatewayFactory, log)
	productSyncService := syncapp.NewProductSyncService(companyRepo, productRepo, gatewayFactory, log)
	orderImportService := importapp.NewService(companyRepo, gatewayFactory, importScope, log)

	// Initialize HTTP handlers
	companyHandler := handler.NewCompanyHandler(companyService)
	customerHandler := handler.NewCustomerHandler(customerService, customerSyncService)
	productHandler := handler.NewProductHandler(productService, productSyncService)
	orderHandler := handler.NewOrderHandler(orderService, orderImportService)
	integrationHandler := handler.NewIntegrationHandler(integrationService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, request logging, body cap
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health endpoints live outside API versioning and authentication
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	if cfg.App.Env == "production" {
		r.Use(middleware.JWTAuth(jwtService))
	} else {
		// Development accepts X-User-ID/X-Tenant-ID headers in place of a token
		log.Warn("JWT authentication disabled outside production")
	}

	r.Register(companyHandler).
		Register(integrationHandler).
		Register(customerHandler).
		Register(productHandler).
		Register(orderHandler)
	r.Setup()

	// Start HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
