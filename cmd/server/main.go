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
	gormlogger "gorm.io/gorm/logger"

	billingapp "github.com/lupon/backend/internal/application/billing"
	catalogapp "github.com/lupon/backend/internal/application/catalog"
	financeapp "github.com/lupon/backend/internal/application/finance"
	partnerapp "github.com/lupon/backend/internal/application/partner"
	tradeapp "github.com/lupon/backend/internal/application/trade"
	"github.com/lupon/backend/internal/infrastructure/config"
	"github.com/lupon/backend/internal/infrastructure/logger"
	"github.com/lupon/backend/internal/infrastructure/persistence"
	"github.com/lupon/backend/internal/interfaces/http/handler"
	"github.com/lupon/backend/internal/interfaces/http/middleware"
	"github.com/lupon/backend/internal/interfaces/http/router"
)

const maxBodySize = 4 << 20 // 4MB

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	counterpartyRepo := persistence.NewGormCounterpartyRepository(db.DB)
	balanceEntryRepo := persistence.NewGormBalanceEntryRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	creditNoteRepo := persistence.NewGormCreditNoteRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	counterpartyService := partnerapp.NewCounterpartyService(counterpartyRepo, balanceEntryRepo)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, counterpartyRepo)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, saleRepo, counterpartyRepo, uow)
	saleService := billingapp.NewSaleService(saleRepo, salesOrderRepo, purchaseOrderRepo,
		counterpartyRepo, balanceEntryRepo, uow)
	purchaseService := billingapp.NewPurchaseService(purchaseRepo, purchaseOrderRepo,
		counterpartyRepo, balanceEntryRepo, uow)
	collectionService := financeapp.NewCollectionService(collectionRepo, saleRepo,
		counterpartyRepo, balanceEntryRepo, uow)
	paymentService := financeapp.NewPaymentService(paymentRepo, purchaseRepo,
		counterpartyRepo, balanceEntryRepo, uow)
	creditNoteService := financeapp.NewCreditNoteService(creditNoteRepo, saleRepo, purchaseRepo,
		counterpartyRepo, balanceEntryRepo, uow)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(maxBodySize))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(
		handler.NewProductHandler(productService),
		handler.NewCounterpartyHandler(counterpartyService),
		handler.NewSalesOrderHandler(salesOrderService),
		handler.NewPurchaseOrderHandler(purchaseOrderService),
		handler.NewSaleHandler(saleService),
		handler.NewPurchaseHandler(purchaseService),
		handler.NewCollectionHandler(collectionService),
		handler.NewPaymentHandler(paymentService),
		handler.NewCreditNoteHandler(creditNoteService),
		handler.NewSystemHandler(db),
	)
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
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
