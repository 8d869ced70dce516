package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultRepo "mdvault/internal/domain/repositories/vault"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentStore implements DocumentStore over a documents table.
// Every error is returned as a *domain.RemoteError so the folder engine
// treats the database like any other document service.
type PostgresDocumentStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	tx     *TransactionManager
	logger *slog.Logger
}

var (
	_ vaultRepo.DocumentStore  = (*PostgresDocumentStore)(nil)
	_ vaultRepo.DocumentSeeder = (*PostgresDocumentStore)(nil)
)

// NewDocumentStore creates a new document store
func NewDocumentStore(config *RepositoryConfig) *PostgresDocumentStore {
	return &PostgresDocumentStore{
		pool:   config.Pool,
		tables: config.Tables,
		tx:     NewTransactionManager(config.Pool, config.Logger),
		logger: config.Logger,
	}
}

const documentColumns = "id, title, project, tags, file_name, file_type, created_at, updated_at"

// ListDocuments returns document metadata, most recently updated first
func (r *PostgresDocumentStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY updated_at DESC, id ASC
	`, documentColumns, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, domain.NewRemoteError("list", "", fmt.Errorf("list documents: %w", err))
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, domain.NewRemoteError("list", "", fmt.Errorf("scan document: %w", err))
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewRemoteError("list", "", fmt.Errorf("iterate documents: %w", err))
	}

	return documents, nil
}

// GetDocument retrieves a document by ID
func (r *PostgresDocumentStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, domain.NewRemoteError("get", id, err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, key))
	if err != nil {
		return nil, domain.NewRemoteError("get", id, r.mapError(id, err))
	}
	return doc, nil
}

// UpdateProject sets a document's project; nil stores NULL
func (r *PostgresDocumentStore) UpdateProject(ctx context.Context, id string, project *string) (*models.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, domain.NewRemoteError("update", id, err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET project = $1, updated_at = $2
		WHERE id = $3
		RETURNING %s
	`, r.tables.Documents, documentColumns)

	doc, err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, project, time.Now(), key))
	if err != nil {
		return nil, domain.NewRemoteError("update", id, r.mapError(id, err))
	}
	return doc, nil
}

// DeleteDocument deletes a document
func (r *PostgresDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return domain.NewRemoteError("delete", id, err)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, key)
	if err != nil {
		return domain.NewRemoteError("delete", id, fmt.Errorf("delete document: %w", err))
	}

	if result.RowsAffected() == 0 {
		return domain.NewRemoteError("delete", id, fmt.Errorf("document %s: %w", id, domain.ErrNotFound))
	}

	return nil
}

// EnsureSchema creates the documents table and its index if missing
func (r *PostgresDocumentStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				content TEXT NOT NULL DEFAULT '',
				project TEXT,
				tags TEXT[] NOT NULL DEFAULT '{}',
				file_name TEXT,
				file_type TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, r.tables.Documents),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_project ON %s(project)`,
			r.tables.Documents, r.tables.Documents),
	}

	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedDocuments inserts docs in a single transaction
func (r *PostgresDocumentStore) SeedDocuments(ctx context.Context, docs []models.Document, replace bool) (int, error) {
	inserted := 0
	err := r.tx.ExecTx(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.pool)

		if replace {
			if _, err := exec.Exec(ctx, fmt.Sprintf("DELETE FROM %s", r.tables.Documents)); err != nil {
				return fmt.Errorf("clear documents: %w", err)
			}
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (title, project, tags, file_name, file_type)
			VALUES ($1, $2, $3, $4, $5)
		`, r.tables.Documents)

		for _, doc := range docs {
			tags := doc.Tags
			if tags == nil {
				tags = []string{}
			}
			if _, err := exec.Exec(ctx, query, doc.Title, doc.Project, tags, doc.FileName, doc.FileType); err != nil {
				return fmt.Errorf("insert document %q: %w", doc.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("documents seeded", "count", inserted, "replace", replace, "table", r.tables.Documents)
	return inserted, nil
}

func (r *PostgresDocumentStore) mapError(id string, err error) error {
	if missingSchema(err) {
		r.logger.Error("documents table missing; run the seed command with -schema-only", "table", r.tables.Documents)
	}
	return documentError(id, err)
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var (
		doc models.Document
		key int64
	)
	err := row.Scan(
		&key,
		&doc.Title,
		&doc.Project,
		&doc.Tags,
		&doc.FileName,
		&doc.FileType,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.ID = strconv.FormatInt(key, 10)
	return &doc, nil
}

// parseID accepts the decimal IDs this store hands out. Anything else cannot
// name a row.
func parseID(id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}
	return key, nil
}
