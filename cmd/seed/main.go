package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"mdvault/internal/config"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	"mdvault/internal/repository/postgres"
	"mdvault/internal/repository/sqlite"
	"mdvault/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	fixturePath := flag.String("fixture", "", "YAML fixture to load (default: embedded demo vault)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed documents")
	replace := flag.Bool("replace", false, "Delete all documents before seeding")
	backend := flag.String("backend", "", "postgres or sqlite (default: STORE_BACKEND)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if *backend == "" {
		*backend = cfg.StoreBackend
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *replace {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--replace) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	var (
		seeder vaultRepo.DocumentSeeder
		where  string
	)
	switch *backend {
	case config.StorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		seeder = postgres.NewDocumentStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		where = "postgres, prefix " + cfg.TablePrefix
	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			log.Fatalf("Failed to open sqlite database: %v", err)
		}
		defer store.Close()

		seeder = store
		where = "sqlite " + cfg.SQLitePath
	default:
		log.Fatalf("Backend %q has no local database to seed (use postgres or sqlite)", *backend)
	}

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, %s)", cfg.Environment, where)
	} else {
		log.Printf("🌱 Seeding documents (environment: %s, %s)", cfg.Environment, where)
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := seeder.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		return
	}

	docs, err := seed.Load(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	if *replace {
		log.Println("⚠️  Replacing existing documents...")
	}
	count, err := seeder.SeedDocuments(ctx, docs, *replace)
	if err != nil {
		log.Fatalf("Failed to seed documents: %v", err)
	}

	log.Printf("🎉 Seeding complete! %d documents", count)
}
