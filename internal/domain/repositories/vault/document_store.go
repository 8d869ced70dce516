package vault

import (
	"context"

	"mdvault/internal/domain/models/vault"
)

// DocumentStore is the narrow contract with the remote document service.
// Every failure is returned as a *domain.RemoteError.
type DocumentStore interface {
	// ListDocuments returns the current document list (metadata, no content)
	ListDocuments(ctx context.Context) ([]vault.Document, error)

	// GetDocument retrieves a single document
	GetDocument(ctx context.Context, id string) (*vault.Document, error)

	// UpdateProject sets the project path of one document; nil moves it to
	// unsorted. Retrying with the same value yields the same final state.
	UpdateProject(ctx context.Context, id string, project *string) (*vault.Document, error)

	// DeleteDocument deletes one document
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentSeeder loads fixture documents into a database-backed store.
// It is used by the seed command, never by the folder engine.
type DocumentSeeder interface {
	// EnsureSchema creates the documents table if it does not exist
	EnsureSchema(ctx context.Context) error

	// SeedDocuments inserts docs in one transaction, optionally clearing the
	// table first, and returns how many were inserted. IDs are assigned by
	// the database.
	SeedDocuments(ctx context.Context, docs []vault.Document, replace bool) (int, error)
}
