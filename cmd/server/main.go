package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
	dashboardapp "github.com/fintrack/backend/internal/application/dashboard"
	identityapp "github.com/fintrack/backend/internal/application/identity"
	invoicingapp "github.com/fintrack/backend/internal/application/invoicing"
	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	planningapp "github.com/fintrack/backend/internal/application/planning"
	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
	reportapp "github.com/fintrack/backend/internal/application/report"
	taxapp "github.com/fintrack/backend/internal/application/tax"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/infrastructure/messaging"
	"github.com/fintrack/backend/internal/infrastructure/pdf"
	"github.com/fintrack/backend/internal/infrastructure/persistence"
	"github.com/fintrack/backend/internal/infrastructure/quotes"
	"github.com/fintrack/backend/internal/infrastructure/scheduler"
	"github.com/fintrack/backend/internal/infrastructure/storage"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/fintrack/backend/internal/interfaces/http/handler"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/fintrack/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting FinTrack Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry (no-op when disabled)
	telemetryProvider, err := telemetry.Setup(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetryProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Redis backs the token blacklist and the quote cache. When it is
	// unreachable at startup the server still comes up with in-process
	// fallbacks.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisAvailable := true
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisAvailable = false
			log.Warn("Redis unavailable, using in-memory fallbacks", zap.Error(err))
		}
		cancel()
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	taxPeriodRepo := persistence.NewGormTaxPeriodRepository(db.DB)
	portfolioRepo := persistence.NewGormPortfolioRepository(db.DB)
	holdingRepo := persistence.NewGormHoldingRepository(db.DB)
	goalRepo := persistence.NewGormGoalRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisAvailable {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Attachment storage
	var attachmentStorage ledgerapp.AttachmentStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3AttachmentStorage(cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize attachment storage", zap.Error(err))
		}
		attachmentStorage = s3Storage
	} else {
		attachmentStorage = storage.NewStubAttachmentStorage()
		log.Warn("Object storage disabled, attachments use stub storage")
	}

	// Invoice PDF rendering
	var renderer invoicingapp.PDFRenderer
	if cfg.PDF.Enabled {
		invoiceRenderer, err := pdf.NewInvoiceRenderer(cfg.PDF, log)
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer invoiceRenderer.Close()
		renderer = invoiceRenderer
	} else {
		log.Warn("PDF rendering disabled")
	}

	// Reminder delivery
	reminderSender := messaging.NewFallbackSenderFromConfig(cfg.Messaging, log)

	// Market quotes with provider fallback and optional Redis caching
	var quoteSource portfolioapp.QuoteSource = quotes.NewChainFromConfig(cfg.Quotes, log)
	if redisAvailable && cfg.Quotes.CacheTTL > 0 {
		quoteSource = cache.NewRedisQuoteCache(redisClient, quoteSource, cfg.Quotes.CacheTTL, log)
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	accountService := ledgerapp.NewAccountService(accountRepo, log)
	categoryService := ledgerapp.NewCategoryService(categoryRepo, log)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, accountRepo, categoryRepo, log)
	attachmentService := ledgerapp.NewAttachmentService(transactionRepo, attachmentStorage, log)
	clientService := invoicingapp.NewClientService(clientRepo, log)
	invoiceService := invoicingapp.NewInvoiceService(invoiceRepo, clientRepo, renderer, reminderSender, log)
	budgetService := budgetapp.NewService(budgetRepo, categoryRepo, log)
	taxService := taxapp.NewService(taxPeriodRepo, log)
	portfolioService := portfolioapp.NewService(portfolioRepo, holdingRepo, quoteSource, log)
	planningService := planningapp.NewService(goalRepo, loanRepo, accountRepo, log)
	reportService := reportapp.NewService(reportRepo, log)
	dashboardService := dashboardapp.NewService(
		accountService, transactionRepo, invoiceRepo,
		budgetService, planningService, portfolioService, log,
	)

	// Background jobs
	if cfg.Scheduler.Enabled {
		jobs := []scheduler.Job{
			scheduler.NewOverdueSweepJob(invoiceService, log),
		}
		sched := scheduler.NewScheduler(scheduler.Config{
			Interval:   cfg.Scheduler.OverdueSweepInterval,
			JobTimeout: cfg.Scheduler.JobTimeout,
		}, jobs, log)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Duration("interval", cfg.Scheduler.OverdueSweepInterval),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService, attachmentService)
	clientHandler := handler.NewClientHandler(clientService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	taxHandler := handler.NewTaxHandler(taxService)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService)
	planningHandler := handler.NewPlanningHandler(planningService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

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
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Liveness probe outside API versioning
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(systemHandler).
		Register(authHandler).
		Register(accountHandler).
		Register(categoryHandler).
		Register(transactionHandler).
		Register(clientHandler).
		Register(invoiceHandler).
		Register(budgetHandler).
		Register(taxHandler).
		Register(portfolioHandler).
		Register(planningHandler).
		Register(reportHandler).
		Register(dashboardHandler)

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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
