package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-generator/internal/adapter/http"
	repo "cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"
	"cv-generator/internal/infrastructure/migration"
	"cv-generator/internal/usecase"
	infra "cv-generator/pkg/infrastructure"
	"cv-generator/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// infra setup
	pool := connectDocuments(ctx, cfg)
	if pool != nil {
		defer pool.Close()
	}

	renderer, err := infra.NewRenderer(cfg.PDF)
	if err != nil {
		logger.Fatal("failed to create PDF renderer", zap.Error(err))
	}

	documents := repo.NewDocumentsRepo(pool)
	processor := usecase.NewProcessor(renderer, documents)

	h := httpadapter.NewHandler(processor, documents, cfg.Database)
	app := httpadapter.NewApp(cfg.Server, h)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("pdf_engine", cfg.PDF.Engine),
			zap.Bool("persistence", documents.Available()),
		)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}

// connectDocuments opens the optional document store. The service runs
// without persistence when it is not configured or not reachable.
func connectDocuments(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := infra.NewDocumentsPool(connectCtx, cfg.Database)
	if errors.Is(err, infra.ErrPersistenceDisabled) {
		logger.Info("DATABASE_URL not set, profiles will not be stored")
		return nil
	}
	if err != nil {
		logger.Warn("document store not available", zap.Error(err))
		return nil
	}

	if cfg.Database.MigrateOnStart {
		if err := migration.RunMigrations(connectCtx, pool); err != nil {
			logger.Warn("migrations failed, continuing without persistence", zap.Error(err))
			pool.Close()
			return nil
		}
	}
	return pool
}
