package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/kitabayar/backend/internal/application/billing"
	dashboardapp "github.com/kitabayar/backend/internal/application/dashboard"
	identityapp "github.com/kitabayar/backend/internal/application/identity"
	paymentapp "github.com/kitabayar/backend/internal/application/payment"
	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/infrastructure/gateway"
	"github.com/kitabayar/backend/internal/infrastructure/logger"
	"github.com/kitabayar/backend/internal/infrastructure/persistence"
	"github.com/kitabayar/backend/internal/infrastructure/scheduler"
	"github.com/kitabayar/backend/internal/infrastructure/telemetry"
	"github.com/kitabayar/backend/internal/interfaces/http/handler"
	"github.com/kitabayar/backend/internal/interfaces/http/middleware"
	"github.com/kitabayar/backend/internal/interfaces/http/router"

	_ "github.com/kitabayar/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			KitaBayar API
//	@version		1.0
//	@description	RT/RW dues backend: residents, bills, payments and Midtrans checkout

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Rebuild the logger so entries also flow to the OTLP log pipeline
	log, err := logger.New(logCfg, providers.LogCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting KitaBayar",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("timezone", cfg.App.Location().String()),
	)

	db, err := persistence.NewDatabase(&cfg.Database,
		logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.InstrumentGorm(db.DB, cfg.Telemetry, log); err != nil {
		log.Warn("Failed to instrument GORM", zap.Error(err))
	}
	meter := providers.Meter("kitabayar")
	if sqlDB, err := db.DB.DB(); err == nil {
		if _, err := telemetry.ObservePool(meter, sqlDB); err != nil {
			log.Warn("Failed to observe connection pool", zap.Error(err))
		}
	}

	store, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Open(ctx)
	if err != nil {
		log.Fatal("Failed to open cache", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	metrics, err := telemetry.NewBillingMetrics(meter)
	if err != nil {
		log.Warn("Failed to create billing metrics", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	residentRepo := persistence.NewGormResidentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	billTypeRepo := persistence.NewGormBillTypeRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	txManager := persistence.NewTxManager(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewStoreBlacklist(store)

	// Application services
	loc := cfg.App.Location()
	authService := identityapp.NewAuthService(userRepo, residentRepo, txManager, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	residentService := residentapp.NewService(residentRepo, userRepo, log)
	configService := billingapp.NewConfigService(categoryRepo, billTypeRepo, periodRepo, log)
	billService := billingapp.NewBillService(billRepo, billTypeRepo, periodRepo, residentRepo, paymentRepo, txManager, log,
		billingapp.WithMetrics(metrics),
	)

	paymentOpts := []paymentapp.Option{
		paymentapp.WithStore(store),
		paymentapp.WithMetrics(metrics),
		paymentapp.WithReceiptPrefix(cfg.Billing.ReceiptPrefix),
		paymentapp.WithLocation(loc),
	}
	if cfg.Midtrans.Enabled {
		paymentOpts = append(paymentOpts, paymentapp.WithGateway(gateway.NewMidtransGateway(cfg.Midtrans)))
		log.Info("Midtrans checkout enabled", zap.Bool("production", cfg.Midtrans.Production))
	} else {
		log.Info("Midtrans checkout disabled, only offline payments are accepted")
	}
	paymentService := paymentapp.NewService(paymentRepo, billRepo, billTypeRepo, residentRepo, txManager, log, paymentOpts...)

	dashboardService := dashboardapp.NewService(residentRepo, billTypeRepo, periodRepo, billRepo, paymentRepo, log,
		dashboardapp.WithCache(store, cfg.Billing.StatsCacheTTL),
		dashboardapp.WithLocation(loc),
		dashboardapp.WithDueSoonDays(cfg.Billing.DueSoonDays),
	)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		User:           handler.NewUserHandler(userService),
		Resident:       handler.NewResidentHandler(residentService, dashboardService),
		LegacyResident: handler.NewLegacyResidentHandler(residentService, dashboardService),
		BillingConfig:  handler.NewBillingConfigHandler(configService),
		Bill:           handler.NewBillHandler(billService, dashboardService),
		Payment:        handler.NewPaymentHandler(paymentService, dashboardService),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		System:         handler.NewSystemHandler(db, version),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: request ID first so recovery and access logs carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, providers.TracingEnabled()))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.Secure(cfg.App.IsProduction()))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	routeCfg := router.Config{
		JWT: middleware.JWTConfig{
			JWTService: jwtService,
			Blacklist:  blacklist,
			Logger:     log,
		},
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
		SwaggerHandler: ginSwagger.WrapHandler(swaggerFiles.Handler),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		routeCfg.AuthLimiter = authLimiter
	}
	router.Mount(engine, handlers, routeCfg)

	var sweep *scheduler.DailyTrigger
	if cfg.Billing.OverdueSweepEnabled {
		sweep, err = scheduler.NewOverdueSweep(cfg.Billing.OverdueSweepSchedule, loc, billService, dashboardService, log)
		if err != nil {
			log.Fatal("Invalid overdue sweep schedule", zap.Error(err))
		}
		if err := sweep.Start(ctx); err != nil {
			log.Fatal("Failed to start overdue sweep", zap.Error(err))
		}
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if sweep != nil {
		if err := sweep.Stop(shutdownCtx); err != nil {
			log.Warn("Overdue sweep did not stop in time", zap.Error(err))
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
