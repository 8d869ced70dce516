package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultRepo "mdvault/internal/domain/repositories/vault"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a DocumentStore over a SQLite file with the vault backend's own
// documents table, so an existing vault database can be opened directly.
// Tags are stored comma-separated.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var (
	_ vaultRepo.DocumentStore  = (*Store)(nil)
	_ vaultRepo.DocumentSeeder = (*Store)(nil)
)

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; keep a single connection so writes serialize here.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the documents table
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		project TEXT,
		tags TEXT,
		file_name TEXT,
		file_type TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_project ON documents(project);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const selectDocument = `
	SELECT id, title, project, tags, file_name, file_type, created_at, updated_at
	FROM documents`

// ListDocuments returns document metadata, most recently updated first
func (s *Store) ListDocuments(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, selectDocument+" ORDER BY updated_at DESC, id ASC")
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
func (s *Store) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, domain.NewRemoteError("get", id, err)
	}

	doc, err := scanDocument(s.db.QueryRowContext(ctx, selectDocument+" WHERE id = ?", key))
	if err != nil {
		return nil, domain.NewRemoteError("get", id, mapError(id, err))
	}
	return doc, nil
}

// UpdateProject sets a document's project; nil stores NULL
func (s *Store) UpdateProject(ctx context.Context, id string, project *string) (*models.Document, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, domain.NewRemoteError("update", id, err)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE documents SET project = ?, updated_at = ? WHERE id = ?",
		project, time.Now().UTC(), key,
	)
	if err != nil {
		return nil, domain.NewRemoteError("update", id, fmt.Errorf("update document: %w", err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, domain.NewRemoteError("update", id, mapError(id, sql.ErrNoRows))
	}

	doc, err := scanDocument(s.db.QueryRowContext(ctx, selectDocument+" WHERE id = ?", key))
	if err != nil {
		return nil, domain.NewRemoteError("update", id, mapError(id, err))
	}
	return doc, nil
}

// DeleteDocument deletes a document
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return domain.NewRemoteError("delete", id, err)
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", key)
	if err != nil {
		return domain.NewRemoteError("delete", id, fmt.Errorf("delete document: %w", err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.NewRemoteError("delete", id, mapError(id, sql.ErrNoRows))
	}
	return nil
}

// SeedDocuments inserts docs in a single transaction
func (s *Store) SeedDocuments(ctx context.Context, docs []models.Document, replace bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
			return 0, fmt.Errorf("clear documents: %w", err)
		}
	}

	inserted := 0
	for _, doc := range docs {
		var tags *string
		if len(doc.Tags) > 0 {
			joined := models.JoinTags(doc.Tags)
			tags = &joined
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO documents (title, project, tags, file_name, file_type) VALUES (?, ?, ?, ?, ?)",
			doc.Title, doc.Project, tags, doc.FileName, doc.FileType,
		)
		if err != nil {
			return 0, fmt.Errorf("insert document %q: %w", doc.Title, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("documents seeded", "count", inserted, "replace", replace)
	return inserted, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row scanner) (*models.Document, error) {
	var (
		doc       models.Document
		key       int64
		tags      sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(&key, &doc.Title, &doc.Project, &tags, &doc.FileName, &doc.FileType, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	doc.ID = strconv.FormatInt(key, 10)
	doc.Tags = models.SplitTags(tags.String)
	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time
	return &doc, nil
}

func mapError(id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return err
}

func parseID(id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}
	return key, nil
}
