package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/LawUtilities/ADMS.API-sub003/docs"
	"github.com/LawUtilities/ADMS.API-sub003/internal/config"
	"github.com/LawUtilities/ADMS.API-sub003/internal/database"
	"github.com/LawUtilities/ADMS.API-sub003/internal/database/migration"
	handlers "github.com/LawUtilities/ADMS.API-sub003/internal/http/handler"
	"github.com/LawUtilities/ADMS.API-sub003/internal/http/middleware"
	"github.com/LawUtilities/ADMS.API-sub003/internal/logger"
	"github.com/LawUtilities/ADMS.API-sub003/internal/otel"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository/postgres"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
	"github.com/LawUtilities/ADMS.API-sub003/internal/storage"
)

// @title ADMS API
// @version 1.0
// @description Document management service for legal matters.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// PostgreSQL connection, pooled via database/sql over the pgx driver
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, zlog, cfg.Database.Host); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// S3-compatible object storage for document content
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		zlog.Fatal("failed to initialize object storage", zap.Error(err))
	}

	matterRepo := postgres.NewMatterPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	revisionRepo := postgres.NewRevisionPostgres(db)
	activityRepo := postgres.NewActivityPostgres(db)

	matterSvc := service.NewMatterService(matterRepo, docRepo, activityRepo)
	docSvc := service.NewDocumentService(objStore, docRepo, matterRepo, revisionRepo, activityRepo)
	revisionSvc := service.NewRevisionService(revisionRepo, docRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware; RequestID must come first so the logger sees the ID
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zlog))
	app.Use(otelfiber.Middleware(otelfiber.WithServerName(cfg.AppName)))

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(promRegistry)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, matterSvc, docSvc, revisionSvc)

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

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			zlog.Error("tracing shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zlog.Info("server listening", zap.String("addr", addr), zap.String("app", cfg.AppName))
	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
