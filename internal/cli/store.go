package cli

import (
	"context"
	"fmt"
	"log/slog"

	"mdvault/internal/config"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	"mdvault/internal/repository/memory"
	"mdvault/internal/repository/postgres"
	"mdvault/internal/repository/remote"
	"mdvault/internal/repository/sqlite"
	"mdvault/internal/seed"
)

// OpenStore connects to the configured backend. The returned func releases
// it.
func OpenStore(ctx context.Context, s *Settings, logger *slog.Logger) (vaultRepo.DocumentStore, func(), error) {
	switch s.Backend {
	case config.StoreHTTP:
		client := remote.NewClient(remote.Config{
			BaseURL:   s.APIURL,
			Token:     s.Token,
			Timeout:   s.Timeout,
			RateLimit: s.RateLimit,
			Logger:    logger,
		})
		return client, func() {}, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, s.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, s.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewDocumentStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(s.TablePrefix),
			Logger: logger,
		})
		return store, pool.Close, nil

	case config.StoreMemory:
		docs, err := seed.Default()
		if err != nil {
			return nil, nil, err
		}
		store := memory.NewStore()
		store.Seed(docs...)
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q (http, sqlite, postgres or memory)", s.Backend)
	}
}
