// Package main provides the main entry point for the marketing manager API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/marketing-manager/app/handlers"
	"github.com/amirphl/marketing-manager/app/middleware"
	"github.com/amirphl/marketing-manager/app/router"
	"github.com/amirphl/marketing-manager/app/services"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/config"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logCloser := initializeLogging(cfg.Logging)
	defer logCloser.Close()

	log.Println("Starting marketing manager application...")

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Release connections only after in-flight requests have drained
	for _, fn := range app.stopFuncs {
		fn()
	}

	log.Println("Server stopped")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// initializeLogging routes the standard logger to stdout, a rotated file or both
func initializeLogging(cfg config.LoggingConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.LUTC)

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Output == "file" || cfg.Output == "both" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}
	if cfg.Output == "stdout" || cfg.Output == "both" || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return closer
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        utils.UTCNow,
	}
	if cfg.SlowQueryLog {
		gormCfg.Logger = gormlogger.New(log.Default(), gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Println("Database schema migrated")
	}

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// A disabled cache yields a nil client, which turns off token revocation and
// login throttling.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Println("Cache disabled: token revocation and login lockout are off")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// seedAdmin makes sure the configured bootstrap admin exists
func seedAdmin(authFlow businessflow.AuthFlow, cfg config.SeedConfig) error {
	if !cfg.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := authFlow.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if created {
		log.Printf("Admin user %s created", cfg.AdminEmail)
	}
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stopFuncs = append(stopFuncs, func() { _ = sqlDB.Close() })

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	healthChecks := map[string]router.HealthCheck{
		"database": sqlDB.PingContext,
	}
	if rc != nil {
		stopFuncs = append(stopFuncs, func() { _ = rc.Close() })
		healthChecks["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
	}

	loc, err := utils.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid analytics timezone: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	postRepo := repository.NewSocialMediaPostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	revocations := services.NewRedisRevocationStore(rc, cfg.Cache.RedisPrefix)
	loginGuard := services.NewRedisLoginGuard(rc, cfg.Cache.RedisPrefix, cfg.Security.MaxFailedLogins, cfg.Security.LoginLockoutWindow)
	withTx := businessflow.NewGormTxRunner(db)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(userRepo, auditRepo, tokenService, revocations, loginGuard, withTx)
	campaignFlow := businessflow.NewCampaignFlow(campaignRepo, auditRepo)
	promoFlow := businessflow.NewPromoCodeFlow(promoRepo, auditRepo, withTx)
	postFlow := businessflow.NewSocialMediaFlow(postRepo, campaignRepo, auditRepo)
	analyticsFlow := businessflow.NewAnalyticsFlow(analyticsRepo, campaignRepo, promoRepo, postRepo, auditRepo, loc)

	if err := seedAdmin(authFlow, cfg.Seed); err != nil {
		return nil, err
	}

	// Initialize handlers
	rules := handlers.NewValidator()
	appRouter := router.NewFiberRouter(cfg, router.Handlers{
		Auth:        handlers.NewAuthHandler(authFlow, rules),
		Campaign:    handlers.NewCampaignHandler(campaignFlow, rules),
		PromoCode:   handlers.NewPromoCodeHandler(promoFlow, rules),
		SocialMedia: handlers.NewSocialMediaHandler(postFlow, rules),
		Analytics:   handlers.NewAnalyticsHandler(analyticsFlow, rules),
	}, middleware.NewAuthMiddleware(tokenService, revocations), healthChecks)

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
