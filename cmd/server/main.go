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
	"github.com/redis/go-redis/v9"
	companyapp "github.com/syncworks/backend/internal/application/company"
	fleetapp "github.com/syncworks/backend/internal/application/fleet"
	identityapp "github.com/syncworks/backend/internal/application/identity"
	pricingapp "github.com/syncworks/backend/internal/application/pricing"
	quoteapp "github.com/syncworks/backend/internal/application/quote"
	reportapp "github.com/syncworks/backend/internal/application/report"
	schedulingapp "github.com/syncworks/backend/internal/application/scheduling"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/auth"
	"github.com/syncworks/backend/internal/infrastructure/cache"
	"github.com/syncworks/backend/internal/infrastructure/config"
	"github.com/syncworks/backend/internal/infrastructure/event"
	"github.com/syncworks/backend/internal/infrastructure/logger"
	"github.com/syncworks/backend/internal/infrastructure/migration"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
	"github.com/syncworks/backend/internal/infrastructure/printing"
	"github.com/syncworks/backend/internal/infrastructure/scheduler"
	"github.com/syncworks/backend/internal/infrastructure/storage"
	"github.com/syncworks/backend/internal/infrastructure/telemetry"
	"github.com/syncworks/backend/internal/interfaces/http/handler"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
	"github.com/syncworks/backend/internal/interfaces/http/router"
	"github.com/syncworks/backend/migrations"
	"go.uber.org/zap"

	_ "github.com/syncworks/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			SyncWorks API
//	@version		1.0
//	@description	Quoting, pricing and crew scheduling backend for moving companies
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/syncworks/backend
//	@contact.email	support@syncworks.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logLevel := zap.NewAtomicLevelAt(logger.ParseLevel(cfg.Log.Level))
	logCfg := &logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		TimeFormat:  "2006-01-02T15:04:05.000Z07:00",
		AtomicLevel: &logLevel,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes first so the log bridge, DB and HTTP instrumentation
	// all see the global providers
	providers, err := telemetry.Setup(context.Background(), telemetry.ConfigFromApp(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if providers.Logs.IsEnabled() {
		if bridged, err := logger.New(logCfg, providers.Logs.Core(logger.ParseLevel(cfg.Log.Level))); err == nil {
			log = bridged
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()
	meter := providers.Meter.Meter("github.com/syncworks/backend")

	if cfg.WatchLogLevel(func(level string) {
		next := logger.ParseLevel(level)
		if next != logLevel.Level() {
			log.Info("Log level changed", zap.Stringer("from", logLevel.Level()), zap.Stringer("to", next))
			logLevel.SetLevel(next)
		}
	}) {
		log.Debug("Watching config file for log level changes")
	}

	log.Info("Starting SyncWorks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithParameterizedQueries(cfg.IsProduction()),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbMetrics, err := telemetry.InstrumentDB(db.DB, telemetry.DBConfig{
		TraceEnabled:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		DBName:             cfg.Database.DBName,
	}, meter, log)
	if err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	defer func() { _ = dbMetrics.Stop() }()

	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Redis is optional; without it the blacklist and dashboard cache
	// live in process memory
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	var blacklist auth.TokenBlacklist
	var dashboardCache reportapp.DashboardCache
	var idempotencyStore middleware.IdempotencyStore
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		dashboardCache = cache.NewRedisDashboardCache(redisClient, log)
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		dashboardCache = cache.NewInMemoryDashboardCache()
		memStore := cache.NewInMemoryIdempotencyStore(5 * time.Minute)
		defer func() { _ = memStore.Close() }()
		idempotencyStore = memStore
	}

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	referrerRepo := persistence.NewGormReferrerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	truckRepo := persistence.NewGormTruckRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	ruleRepo := persistence.NewGormSeasonRuleRepository(db.DB)
	holidayRepo := persistence.NewGormHolidayRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	shiftRepo := persistence.NewGormShiftRepository(db.DB)
	assignmentRepo := persistence.NewGormTruckAssignmentRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Optional PDF export and attachment storage
	var quoteOpts []quoteapp.Option
	if cfg.Printing.Enabled {
		chrome := printing.NewChromedpRenderer(printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			ExecPath:       cfg.Printing.ChromePath,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		renderer, err := printing.NewQuotePDFRenderer(chrome, printing.PaperSize(cfg.Printing.PaperSize))
		if err != nil {
			log.Fatal("Failed to initialize quote renderer", zap.Error(err))
		}
		defer func() { _ = renderer.Close() }()
		quoteOpts = append(quoteOpts, quoteapp.WithRenderer(renderer))
		log.Info("PDF export enabled", zap.String("paper_size", cfg.Printing.PaperSize))
	}
	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Could not verify storage bucket", zap.String("bucket", objectStorage.Bucket()), zap.Error(err))
		}
		cancel()
		quoteOpts = append(quoteOpts,
			quoteapp.WithStorage(objectStorage),
			quoteapp.WithAttachmentConfig(quoteapp.AttachmentConfig{
				UploadURLExpiry:   cfg.Storage.PresignExpiration,
				DownloadURLExpiry: cfg.Storage.PresignExpiration,
				MaxFileSize:       cfg.Storage.MaxUploadSize,
			}),
		)
	} else {
		quoteOpts = append(quoteOpts, quoteapp.WithStorage(storage.DisabledObjectStorage{}))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, companyRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, referrerRepo, blacklist, cfg.JWT.RefreshTokenExpiration, eventBus, log)
	companyService := companyapp.NewCompanyService(companyRepo)
	referrerService := companyapp.NewReferrerService(referrerRepo, dashboardRepo)
	truckService := fleetapp.NewTruckService(truckRepo, eventBus)
	employeeService := fleetapp.NewEmployeeService(employeeRepo, eventBus)
	ruleService := pricingapp.NewSeasonRuleService(ruleRepo, eventBus)
	holidayService := pricingapp.NewHolidayService(holidayRepo)
	pricingService := pricingapp.NewPricingService(ruleRepo, holidayRepo, cfg.Pricing.MaxCalendarDays)
	schedulingService := schedulingapp.NewSchedulingService(shiftRepo, assignmentRepo, truckRepo, employeeRepo, quoteRepo, eventBus, log)
	quoteService := quoteapp.NewQuoteService(quoteRepo, companyRepo, referrerRepo, pricingService, append(quoteOpts,
		quoteapp.WithPublisher(eventBus),
		quoteapp.WithTruckScheduler(schedulingService),
		quoteapp.WithBookingScope(persistence.NewGormBookingScope(db, log)),
		quoteapp.WithQuoteTTL(cfg.Pricing.QuoteTTL),
		quoteapp.WithCurrency(cfg.Pricing.Currency),
		quoteapp.WithLogger(log),
	)...)
	dashboardService := reportapp.NewDashboardService(dashboardRepo, quoteRepo, companyRepo, referrerRepo,
		dashboardCache, cfg.Redis.DashboardCacheTTL, log)

	feed := handler.NewFeedHub(
		handler.WithFeedLogger(log),
		handler.WithFeedOrigins(cfg.HTTP.CORSAllowOrigins),
	)

	// Event handlers
	quoteCancelledHandler := schedulingapp.NewQuoteCancelledHandler(schedulingService, log)
	invalidationHandler := reportapp.NewDashboardInvalidationHandler(dashboardService, log)
	eventBus.Subscribe(quoteCancelledHandler)
	eventBus.Subscribe(invalidationHandler)
	eventBus.Subscribe(feed)

	quoteMetrics, err := telemetry.NewQuoteMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create quote metrics", zap.Error(err))
	}
	eventBus.Subscribe(quoteMetrics)

	eventBus.Subscribe(event.NewFuncHandler("quote_audit", func(ctx context.Context, ev shared.DomainEvent) error {
		log.Info("Quote lifecycle",
			zap.String("event_type", ev.EventType()),
			zap.String("quote_id", ev.AggregateID().String()),
			zap.String("company_id", ev.CompanyID().String()),
		)
		return nil
	}, quote.EventTypeQuoteSubmitted, quote.EventTypeQuoteBooked, quote.EventTypeQuoteCompleted,
		quote.EventTypeQuoteCancelled, quote.EventTypeQuoteExpired))

	log.Info("Event handlers registered",
		zap.Strings("quote_cancelled_events", quoteCancelledHandler.EventTypes()),
		zap.Strings("dashboard_invalidation_events", invalidationHandler.EventTypes()),
		zap.Strings("feed_events", feed.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	fleetMetrics, err := telemetry.NewFleetMetrics(meter, telemetry.NewGormFleetStatsProvider(db.DB), log)
	if err != nil {
		log.Fatal("Failed to register fleet metrics", zap.Error(err))
	}
	defer func() { _ = fleetMetrics.Stop() }()

	// Background jobs
	if cfg.Scheduler.Enabled {
		jobs := scheduler.NewScheduler(scheduler.ConfigFromApp(cfg.Scheduler), log)
		jobs.Register("expire_quotes", telemetry.TracedJob("expire_quotes", quoteService.ExpireStaleJob))
		jobs.Register("warm_dashboards", telemetry.TracedJob("warm_dashboards", dashboardService.Warm))
		if err := jobs.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		trigger := scheduler.NewIntervalTrigger(jobs, log,
			scheduler.Interval{Job: "expire_quotes", Every: cfg.Scheduler.ExpireQuotesInterval, RunOnStart: true},
			scheduler.Interval{Job: "warm_dashboards", Every: cfg.Scheduler.WarmCacheInterval},
		)
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start job trigger", zap.Error(err))
		}
		defer func() { _ = trigger.Stop(context.Background()) }()

		log.Info("Scheduler started",
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
			zap.Duration("expire_quotes_interval", cfg.Scheduler.ExpireQuotesInterval),
			zap.Duration("warm_cache_interval", cfg.Scheduler.WarmCacheInterval),
		)
	}

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(handler.BuildInfo{
		Name:    cfg.App.Name,
		Version: version,
		Env:     cfg.App.Env,
		Features: map[string]bool{
			"pdf_export":  cfg.Printing.Enabled,
			"attachments": cfg.Storage.Enabled,
			"redis":       redisClient != nil,
			"scheduler":   cfg.Scheduler.Enabled,
			"telemetry":   cfg.Telemetry.Enabled,
		},
	}, db)
	if redisClient != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.Cookie, cfg.JWT),
		User:       handler.NewUserHandler(userService),
		Company:    handler.NewCompanyHandler(companyService),
		Referrer:   handler.NewReferrerHandler(referrerService),
		Fleet:      handler.NewFleetHandler(truckService, employeeService),
		Pricing:    handler.NewPricingHandler(ruleService, holidayService, pricingService),
		Quote:      handler.NewQuoteHandler(quoteService),
		Scheduling: handler.NewSchedulingHandler(schedulingService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		System:     systemHandler,
		Feed:       feed,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	// Middleware order matters: the request ID must exist before the
	// logger and span enricher read it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanEnricher())
	engine.Use(httpMetrics)
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.SecureWithConfig(security))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})
	guards := router.Guards{
		JWT: jwtMiddleware,
		FeedJWT: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:      jwtService,
			Blacklist:       blacklist,
			AllowQueryToken: true,
			Logger:          log,
		}),
		Idempotency: middleware.Idempotency(middleware.IdempotencyConfig{
			Store:  idempotencyStore,
			TTL:    cfg.HTTP.IdempotencyTTL,
			Logger: log,
		}),
	}

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		guards.PublicLimit = middleware.RateLimitByKey(limiter, middleware.ClientIPKey)
		log.Info("Public rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limiters = append(limiters, limiter)
		guards.AuthLimit = middleware.RateLimitByKey(limiter, middleware.ClientIPKey)
	}
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Mount(handlers, guards).
		Setup()

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// websocket connections are hijacked and not tracked by Shutdown
	feed.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrate applies the embedded schema migrations. The migrator is left
// open because closing it would close the shared connection pool.
func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}
