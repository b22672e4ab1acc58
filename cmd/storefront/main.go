// Storefront proxy - session-scoped shopping state in front of a commerce
// backend. Designed for Cloud Run deployment.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-proxy/internal/backend"
	"storefront-proxy/internal/checkout"
	"storefront-proxy/internal/config"
	"storefront-proxy/internal/coupon"
	"storefront-proxy/internal/geo"
	"storefront-proxy/internal/handler"
	"storefront-proxy/internal/middleware"
	"storefront-proxy/internal/persist"
	"storefront-proxy/internal/pricing"
	"storefront-proxy/internal/session"
	"storefront-proxy/internal/store"
	"storefront-proxy/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("configuration loaded",
		slog.String("store_id", cfg.StoreID),
		slog.String("store_name", cfg.Store.StoreName),
		slog.String("environment", cfg.Environment),
		slog.String("backend_url", cfg.Store.BackendURL),
	)

	// Session documents go to Redis when configured, otherwise stay
	// in-process. In-memory is fine for development but loses carts on
	// restart.
	sessionStore, cleanup, err := createPersistence(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating persistence: %w", err)
	}
	defer cleanup()

	// The backend sits behind a CDN with TLS fingerprinting, so the
	// API client rides the Chrome-shaped transport.
	api, err := backend.New(backend.Config{
		BaseURL: cfg.Store.BackendURL,
		APIKey:  cfg.Store.BackendAPIKey,
		HTTPClient: &http.Client{
			Transport: transport.NewChromeTransport(10 * time.Second),
			Timeout:   30 * time.Second,
		},
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	var geoClient *geo.Client
	if cfg.Store.GeoServiceURL != "" {
		geoClient = geo.New(geo.Config{BaseURL: cfg.Store.GeoServiceURL}, logger)
	}

	h := handler.New(handler.Config{
		API:             api,
		Sessions:        store.NewManager(sessionStore, logger),
		Coupons:         coupon.NewResolver(api, logger),
		Checkout:        checkout.NewBuilder(api, logger),
		Calculator:      pricing.Calculator{FlatRateCents: cfg.ShippingFlatRateCents()},
		Geo:             geoClient,
		DefaultCurrency: cfg.Store.DefaultCurrency,
		Logger:          logger,
	})

	// Setup routes
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Apply middleware chain: recovery → request id → logging → session → handler
	// Recovery must be outermost to catch panics from the inner middleware
	// Session enforces the Shopping-Session header on all requests (except exempt paths)
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
		session.Middleware(cfg.Store.MinClientVersion, logger),
	)(mux)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// createPersistence picks the session document store from configuration.
func createPersistence(ctx context.Context, cfg *config.Config, logger *slog.Logger) (persist.Store, func(), error) {
	if cfg.Store.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return persist.NewMemory(), func() {}, nil
	}

	r := persist.NewRedis(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.SessionTTL())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx); err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("using redis session store",
		slog.String("addr", cfg.Store.RedisAddr),
		slog.Duration("ttl", cfg.SessionTTL()),
	)
	return r, func() { r.Close() }, nil
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
