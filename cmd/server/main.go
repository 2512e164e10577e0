package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/pharmaflow/backend/docs"
	auditapp "github.com/pharmaflow/backend/internal/application/audit"
	catalogapp "github.com/pharmaflow/backend/internal/application/catalog"
	documentapp "github.com/pharmaflow/backend/internal/application/document"
	partnerapp "github.com/pharmaflow/backend/internal/application/partner"
	procurementapp "github.com/pharmaflow/backend/internal/application/procurement"
	"github.com/pharmaflow/backend/internal/infrastructure/config"
	"github.com/pharmaflow/backend/internal/infrastructure/event"
	"github.com/pharmaflow/backend/internal/infrastructure/logger"
	"github.com/pharmaflow/backend/internal/infrastructure/persistence"
	"github.com/pharmaflow/backend/internal/infrastructure/printing"
	"github.com/pharmaflow/backend/internal/infrastructure/printing/providers"
	"github.com/pharmaflow/backend/internal/infrastructure/storage"
	"github.com/pharmaflow/backend/internal/interfaces/http/handler"
	"github.com/pharmaflow/backend/internal/interfaces/http/middleware"
	"github.com/pharmaflow/backend/internal/interfaces/http/router"
)

// @title           PharmaFlow Procurement API
// @version         1.0
// @description     Procurement workflow service for pharmaceutical manufacturing: suppliers, product catalog, purchase orders, QC inspection and goods receipts.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PharmaFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogLevel := gormlogger.Silent
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	reportRepo := persistence.NewGormInspectionReportRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)

	// Event bus with audit logging subscriber
	eventBus := event.NewInMemoryEventBus(log.Named("eventbus"))
	eventBus.Subscribe(auditapp.NewActivityLogHandler(log))

	ctx := context.Background()
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Failed to stop event bus", zap.Error(err))
		}
	}()

	// Application services
	supplierService := partnerapp.NewSupplierService(supplierRepo, eventBus, log)
	productService := catalogapp.NewProductService(productRepo, eventBus, log)
	orderService := procurementapp.NewPurchaseOrderService(orderRepo, reportRepo, supplierRepo, productRepo, eventBus, log)
	inspectionService := procurementapp.NewInspectionService(reportRepo, orderRepo, eventBus, log)
	receiptService := procurementapp.NewReceiptService(receiptRepo, reportRepo, eventBus, log)

	// Document export stack (optional)
	var exportService *documentapp.ExportService
	if cfg.Printing.Enabled {
		renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			ExecPath:       cfg.Printing.ChromePath,
			Logger:         log.Named("printing"),
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Failed to close PDF renderer", zap.Error(err))
			}
		}()

		company := printing.CompanyInfo{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
		}
		registry := providers.NewDataProviderRegistry()
		registry.Register(providers.NewPurchaseOrderProvider(orderRepo, supplierRepo, company))
		registry.Register(providers.NewReceiptProvider(receiptRepo, reportRepo, supplierRepo, company))

		var archiver documentapp.Archiver
		if cfg.Storage.Enabled {
			archive, err := storage.NewS3DocumentArchive(&cfg.Storage, log.Named("storage"))
			if err != nil {
				log.Fatal("Failed to initialize document archive", zap.Error(err))
			}
			if err := archive.EnsureBucket(ctx); err != nil {
				log.Warn("Failed to ensure archive bucket; exports will not be archived until it exists",
					zap.String("bucket", archive.Bucket()),
					zap.Error(err),
				)
			}
			archiver = archive
		}

		exportService = documentapp.NewExportService(
			registry,
			printing.NewTemplateStore(cfg.Printing.TemplateDir),
			printing.NewTemplateEngine(),
			renderer,
			archiver,
			log.Named("export"),
		)
		log.Info("Document export enabled", zap.Bool("archiving", archiver != nil))
	} else {
		log.Info("Document export disabled")
	}

	// HTTP handlers
	supplierHandler := handler.NewSupplierHandler(supplierService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewPurchaseOrderHandler(orderService, exportService)
	inspectionHandler := handler.NewInspectionReportHandler(inspectionService)
	receiptHandler := handler.NewReceiptHandler(receiptService, exportService)
	systemHandler := handler.NewSystemHandler(db)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness probe outside the versioned API
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}

	// Routes
	partnerGroup := router.NewDomainGroup("partner", "/partner").
		POST("/suppliers", supplierHandler.Create).
		GET("/suppliers", supplierHandler.List).
		GET("/suppliers/:id", supplierHandler.GetByID).
		PUT("/suppliers/:id", supplierHandler.Update).
		DELETE("/suppliers/:id", supplierHandler.Delete)

	catalogGroup := router.NewDomainGroup("catalog", "/catalog").
		POST("/products", productHandler.Create).
		GET("/products", productHandler.List).
		GET("/products/:id", productHandler.GetByID).
		PUT("/products/:id", productHandler.Update).
		DELETE("/products/:id", productHandler.Delete)

	procurementGroup := router.NewDomainGroup("procurement", "/procurement").
		POST("/purchase-orders", orderHandler.Create).
		GET("/purchase-orders", orderHandler.List).
		GET("/purchase-orders/:id", orderHandler.GetByID).
		DELETE("/purchase-orders/:id", orderHandler.Delete).
		GET("/purchase-orders/:id/document", orderHandler.ExportDocument).
		GET("/purchase-orders/:id/inspection-report", inspectionHandler.GetByOrderID).
		GET("/purchase-orders/:id/receipts", receiptHandler.GetByOrderID).
		POST("/inspection-reports", inspectionHandler.Create).
		GET("/inspection-reports", inspectionHandler.List).
		GET("/inspection-reports/:id", inspectionHandler.GetByID).
		POST("/receipts", receiptHandler.Create).
		GET("/receipts", receiptHandler.List).
		GET("/receipts/:id", receiptHandler.GetByID).
		GET("/receipts/:id/document", receiptHandler.ExportDocument)

	systemGroup := router.NewDomainGroup("system", "/system").
		GET("/info", systemHandler.GetSystemInfo).
		GET("/ping", systemHandler.Ping).
		GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(partnerGroup).
		Register(catalogGroup).
		Register(procurementGroup).
		Register(systemGroup)
	r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
