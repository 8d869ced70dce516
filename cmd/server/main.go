package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mdvault/internal/auth"
	"mdvault/internal/config"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	"mdvault/internal/handler"
	"mdvault/internal/metrics"
	"mdvault/internal/middleware"
	"mdvault/internal/repository/memory"
	"mdvault/internal/repository/postgres"
	"mdvault/internal/repository/remote"
	"mdvault/internal/repository/sqlite"
	"mdvault/internal/seed"
	"mdvault/internal/service/vault"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging (stdout, plus a rotating file when LOG_DIR is set)
	logger, logCloser, err := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogDir, cfg.LogMaxFiles)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Document store for new sessions
	newStore, closeStore, err := buildStoreFactory(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup document store: %v", err)
	}
	defer closeStore()

	// Token verification: JWKS, then shared secret, then dev user
	verifier, err := buildVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	if verifier != nil {
		defer verifier.Close()
	} else {
		logger.Warn("authentication disabled, all requests run as dev user", "user_id", cfg.DevUserID)
	}

	// Sessions
	m := metrics.NewMetrics()
	sessions := vault.NewSessionManager(newStore, m, logger)
	go vault.RunEviction(ctx, sessions, cfg.SessionIdleTimeout, time.Minute)

	logger.Info("services initialized", "session_idle_timeout", cfg.SessionIdleTimeout)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, sessions, logger)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(verifier, cfg.DevUserID, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RemoteTimeout * 4, // a cascade is many sequential store calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

// buildStoreFactory returns the per-session store constructor for the
// configured backend and a func releasing shared resources.
func buildStoreFactory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (vault.StoreFactory, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewDocumentStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
		return func(string) vaultRepo.DocumentStore { return store }, pool.Close, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("sqlite store opened", "path", cfg.SQLitePath)
		return func(string) vaultRepo.DocumentStore { return store }, func() { _ = store.Close() }, nil

	case config.StoreMemory:
		docs, err := seed.Default()
		if err != nil {
			return nil, nil, err
		}
		store := memory.NewStore()
		store.Seed(docs...)
		logger.Warn("using in-memory demo store, changes are not persisted", "document_count", len(docs))
		return func(string) vaultRepo.DocumentStore { return store }, func() {}, nil

	default:
		client := remote.NewClient(remote.Config{
			BaseURL:   cfg.RemoteAPIURL,
			Timeout:   cfg.RemoteTimeout,
			RateLimit: cfg.RemoteRateLimit,
			Logger:    logger,
		})
		logger.Info("remote document store", "url", cfg.RemoteAPIURL)
		// Each session forwards its caller's token
		return func(token string) vaultRepo.DocumentStore { return client.WithToken(token) }, func() {}, nil
	}
}

// buildVerifier picks the token verifier from config. A nil verifier means
// authentication is off.
func buildVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.TokenVerifier, error) {
	switch {
	case cfg.JWKSURL != "":
		return auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
	case cfg.JWTSecret != "":
		return auth.NewHMACVerifier(cfg.JWTSecret, logger)
	default:
		return nil, nil
	}
}
