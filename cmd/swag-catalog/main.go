package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api"
	"github.com/aaravmahajanofficial/swag-catalog/internal/cache"
	"github.com/aaravmahajanofficial/swag-catalog/internal/cart"
	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/config"
	"github.com/aaravmahajanofficial/swag-catalog/internal/events"
	"github.com/aaravmahajanofficial/swag-catalog/internal/health"
	"github.com/aaravmahajanofficial/swag-catalog/internal/metrics"
	repository "github.com/aaravmahajanofficial/swag-catalog/internal/repositories"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
	"github.com/aaravmahajanofficial/swag-catalog/internal/tracing"
	"github.com/aaravmahajanofficial/swag-catalog/pkg/sendgrid"
)

const version = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(ctx, &cfg.Otel, version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Catalog setup
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error loading the catalog", slog.String("source", cfg.Catalog.Source), slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, warning := range catalog.Check(ds) {
		slog.Warn("catalog integrity", slog.String("warning", warning))
	}

	productCatalog, err := catalog.New(ds)
	if err != nil {
		slog.Error("❌ Error indexing the catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics.SetCatalogSize(productCatalog.Len())

	// Cart storage setup
	cartCache, err := newCache(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := cartCache.Close(); err != nil {
			slog.Error("⚠️ Error closing cart cache", slog.String("error", err.Error()))
		}
	}()

	carts := cart.NewRegistry(cart.NewCacheStorageFactory(cartCache, cfg.Cart.TTL), cfg.Cart.TTL, cfg.Cart.MaxSessions, metrics.CartUpdated)

	go carts.Start()
	defer carts.Stop()

	// Quotation exporters
	var exporters []service.Exporter

	if cfg.SendGrid.Enabled {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		exporters = append(exporters, sendgrid.NewQuotationMailer(emailService))
	}

	if cfg.Kafka.Enabled {
		producer, err := events.NewSyncProducer(&cfg.Kafka)
		if err != nil {
			slog.Error("❌ Error connecting to kafka", slog.String("error", err.Error()))
			os.Exit(1)
		}

		publisher := events.NewQuotationPublisher(producer, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Error("⚠️ Error closing kafka producer", slog.String("error", err.Error()))
			}
		}()

		exporters = append(exporters, publisher)
	}

	catalogService := service.NewCatalogService(productCatalog, cfg.Catalog.SimulatedLatency)
	cartService := service.NewCartService(carts, productCatalog)
	quotationService := service.NewQuotationService(cartService, exporters...)

	slog.Info("catalog initialized",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.Int("products", productCatalog.Len()),
		slog.Int("exporters", len(exporters)),
	)

	// Setup router
	routerMux := api.NewRouter(api.Services{
		Catalog:   catalogService,
		Cart:      cartService,
		Quotation: quotationService,
	})

	healthChecks, err := health.NewHealthHandler(cfg, productCatalog)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux.Handle("GET /health", healthChecks.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	handler := tracing.Middleware(cfg.Otel.ServiceName, api.Wrap(routerMux))

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}

func loadDataset(ctx context.Context, cfg *config.Config) (catalog.Dataset, error) {
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		repos, catalogRepo, err := repository.New(ctx, cfg)
		if err != nil {
			return catalog.Dataset{}, err
		}

		defer func() {
			if err := repos.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			}
		}()

		ds, err := catalogRepo.LoadDataset(ctx)
		if err != nil {
			return catalog.Dataset{}, err
		}

		return *ds, nil
	}

	if cfg.Catalog.Path == "" {
		return catalog.Default()
	}

	return catalog.LoadFile(cfg.Catalog.Path)
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if !cfg.RedisConnect.Enabled {
		return cache.NewMemoryCache(cfg.Cache.DefaultTTL), nil
	}

	client, err := repository.NewRedisClient(ctx, &cfg.RedisConnect)
	if err != nil {
		return nil, err
	}

	return cache.NewRedisCache(client, &cfg.Cache), nil
}
