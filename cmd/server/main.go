package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raisket/marketplace/config"
	httpDelivery "github.com/raisket/marketplace/internal/delivery/http"
	"github.com/raisket/marketplace/internal/domain"
	"github.com/raisket/marketplace/internal/infrastructure/cache"
	"github.com/raisket/marketplace/internal/infrastructure/catalog"
	"github.com/raisket/marketplace/internal/infrastructure/gemini"
	"github.com/raisket/marketplace/internal/infrastructure/notify"
	"github.com/raisket/marketplace/internal/infrastructure/offline"
	"github.com/raisket/marketplace/internal/infrastructure/session"
	"github.com/raisket/marketplace/internal/infrastructure/storage"
	"github.com/raisket/marketplace/internal/logging"
	"github.com/raisket/marketplace/internal/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "raisket: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting Raisket marketplace v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("storage", cfg.Storage.Type),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	products, reviews, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", zap.Int("products", len(products)), zap.Int("reviews", len(reviews)))

	productRepo := storage.NewMemoryProductRepository(products)
	reviewRepo := storage.NewMemoryReviewRepository(reviews)

	sessionStore, closeStore, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore.Close()

	memoryCache := cache.NewMemoryCache(time.Minute)
	defer memoryCache.Close()
	logger.Info("cache ready", zap.Duration("ttl", cfg.Cache.TTL))

	notices := notify.NewQueue(notify.DefaultCapacity, logger)

	completion, err := newCompletionClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	advisorService := usecase.NewAdvisorService(completion, logger, usecase.AdvisorServiceConfig{
		Referrer: cfg.AI.Referrer,
	})
	catalogService := usecase.NewCatalogService(productRepo, reviewRepo, memoryCache, advisorService, logger,
		usecase.CatalogServiceConfig{SummaryCacheTTL: cfg.Cache.TTL})
	reviewService := usecase.NewReviewService(productRepo, reviewRepo, notices, logger)
	comparisonService := usecase.NewComparisonService(productRepo, sessionStore, notices, logger,
		usecase.ComparisonServiceConfig{MaxItems: cfg.Compare.MaxItems})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, reviewService, comparisonService, advisorService, notices, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadCatalog returns the configured catalog file, or the built-in seed with
// its demo reviews
func loadCatalog(cfg *config.Config) ([]domain.Product, []domain.Review, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Seed()
	}

	products, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, err
	}
	return products, nil, nil
}

func openSessionStore(cfg *config.Config) (domain.SessionStore, io.Closer, error) {
	switch cfg.Storage.Type {
	case "file":
		store, err := session.NewFileStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "sqlite":
		store, err := session.OpenSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		store := session.NewMemoryStore()
		return store, store, nil
	}
}

func newCompletionClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.CompletionClient, error) {
	if cfg.AI.Provider == "offline" {
		logger.Warn("AI provider is offline: flows return canned responses")
		return offline.NewClient(""), nil
	}

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		BaseURL:           cfg.AI.BaseURL,
		Temperature:       cfg.AI.Temperature,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Gemini configured",
		zap.String("model", cfg.AI.Model),
		zap.Int("requests_per_minute", cfg.AI.RequestsPerMinute),
	)
	return client, nil
}
