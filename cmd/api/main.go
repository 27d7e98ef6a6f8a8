package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/docs"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/config"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/database"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/database/migration"
	handlers "github.com/RushikJoshi/GT-HRMS-sub000/internal/http/handler"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/http/middleware"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/lock"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/logging"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/otel"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository/objectstore"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository/postgres"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/storage"
)

const bytesPerMB = 1024 * 1024

// @title Career Page API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := logging.NewStdout(cfg.LogLevel, cfg.Location)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	locker, closeLocker := newLocker(ctx, cfg.Redis, logger)
	defer closeLocker()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("failed to register http metrics", zap.Error(err))
	}

	profiles := postgres.NewProfilePostgres(db)
	tenants := postgres.NewTenantPostgres(db)
	snapshots := objectstore.NewSnapshotStore(objStore)
	normalizedRepo := postgres.NewNormalizedPostgres(db)

	careerSvc := service.NewCareerService(profiles, tenants, snapshots, normalizedRepo, locker, rec, logging.Component(logger, "career"))
	normalizedSvc := service.NewNormalizedService(
		normalizedRepo, profiles, tenants,
		cfg.Career.MaxPayloadMB*bytesPerMB, logging.Component(logger, "normalized"),
	)

	var reconciler *service.Reconciler
	if cfg.Career.ReconcileSchedule != "" {
		reconciler = service.NewReconciler(profiles, snapshots, locker, rec, logging.Component(logger, "reconciler"), cfg.Career.ReconcileSchedule)
		if err := reconciler.Start(ctx); err != nil {
			logger.Fatal("failed to start reconciler", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.Career.BodyLimitMB * bytesPerMB,
		DisableStartupMessage: cfg.Env == "production",
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(httpMetrics.Handler())
	app.Use(middleware.Logger(logging.Component(logger, "http")))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:           db,
		Career:       careerSvc,
		Normalized:   normalizedSvc,
		Gatherer:     reg,
		Recorder:     rec,
		Logger:       logger,
		MaxPayloadMB: cfg.Career.MaxPayloadMB,
		DebugErrors:  cfg.DebugErrors,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
		if reconciler != nil {
			select {
			case <-reconciler.Stop().Done():
			case <-shutdownCtx.Done():
			}
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracer shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("event", "server_start"), zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	<-shutdownDone
	logger.Info("server stopped", zap.String("event", "server_stop"))
}

// newLocker picks the Redis lock when REDIS_URL is set and the in-process lock otherwise.
func newLocker(ctx context.Context, c config.RedisConfig, logger *zap.Logger) (lock.Locker, func()) {
	if c.URL == "" {
		logger.Info("using in-process publish lock", zap.String("event", "lock_memory"))
		return lock.NewMemoryLocker(), func() {}
	}
	client, err := lock.NewRedisClient(ctx, c.URL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	ttl := time.Duration(c.LockTTLSec) * time.Second
	return lock.NewRedisLocker(client, ttl, logging.Component(logger, "lock")), func() { _ = client.Close() }
}
