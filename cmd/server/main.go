package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/config"
	"github.com/Adarsh-P-A/retrievo-backend/internal/database"
	"github.com/Adarsh-P-A/retrievo-backend/internal/handlers"
	"github.com/Adarsh-P-A/retrievo-backend/internal/logging"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/Adarsh-P-A/retrievo-backend/internal/routes"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store/memory"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store/postgres"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID is not set; Google sign-in will reject every token")
	}

	pol, err := policy.LoadFromFile(cfg.PolicyPath)
	if err != nil {
		slog.Error("failed to load policy", "path", cfg.PolicyPath, "error", err)
		os.Exit(1)
	}
	slog.Info("policy loaded", "affiliations", pol.Get().Affiliations, "categories", len(pol.Get().Categories))

	ctx := context.Background()

	// Relational store
	var (
		st          store.Store
		db          *gorm.DB
		pgLogSink   *logging.PGHandler
		cleanupDone = make(chan struct{})
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.Warn("using in-memory store; data is lost on restart")
		st = memory.New()
	default:
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		if err := database.Migrate(ctx, cfg); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		st = postgres.New(db)

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogSink = logging.NewPGHandler(db)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			logging.NewStdoutHandler(cfg.AppEnv),
			pgLogSink,
		)))

		// Log cleanup (30-day retention)
		logging.StartCleanup(db, cleanupDone)
	}

	// Redis (optional): signed URL cache and shared limiter counters
	var (
		redisClient    *redis.Client
		limiterStorage fiber.Storage
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		limiterStorage = redisstorage.New(redisstorage.Config{URL: cfg.RedisURL, Reset: false})
		slog.Info("redis enabled", "addr", opts.Addr)
	}

	blobs, err := openBlobStore(ctx, cfg, redisClient)
	if err != nil {
		slog.Error("blob store setup failed", "error", err)
		os.Exit(1)
	}

	// Services
	validate := validation.New(pol)
	filter := services.NewContentFilter(pol.BannedWords())
	identity := services.NewIdentityService(st, cfg, services.NewGoogleJWKSClient(cfg.GoogleClientID))
	itemService := services.NewItemService(st, blobs, validate, filter, cfg.MaxImageBytes)
	reportService := services.NewReportService(st, validate)
	resolutionService := services.NewResolutionService(st, validate, filter)
	moderationService := services.NewModerationService(st, blobs, pol, validate)
	notificationService := services.NewNotificationService(st)
	profileService := services.NewProfileService(st, blobs, validate)

	// Handlers
	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(identity),
		Health:        handlers.NewHealthHandler(st),
		Config:        handlers.NewConfigHandler(pol, cfg.MaxImageBytes),
		Legal:         handlers.NewLegalHandler(cfg.AppName),
		Items:         handlers.NewItemHandler(itemService, reportService, cfg.MaxImageBytes),
		Resolutions:   handlers.NewResolutionHandler(resolutionService),
		Moderation:    handlers.NewModerationHandler(moderationService, resolutionService),
		Profiles:      handlers.NewProfileHandler(profileService),
		Notifications: handlers.NewNotificationHandler(notificationService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; the body limit leaves room for the multipart envelope
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxImageBytes) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, limiterStorage, identity, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver, "blobs", cfg.BlobDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogSink != nil {
		pgLogSink.Stop()
	}
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

func openBlobStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (blob.Store, error) {
	if cfg.BlobDriver == config.BlobDriverMemory {
		slog.Warn("using in-memory blob store; images are lost on restart")
		return blob.NewMemoryStore("http://localhost:" + cfg.Port + "/blobs"), nil
	}

	s3Store, err := blob.NewS3Store(ctx, blob.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		SignTTL:         cfg.S3SignTTL,
	})
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		return blob.NewSignCache(s3Store, redisClient, s3Store.TTL()), nil
	}
	return s3Store, nil
}
