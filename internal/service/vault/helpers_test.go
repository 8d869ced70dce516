package vault

import (
	"context"
	"io"
	"log/slog"
	"testing"

	models "mdvault/internal/domain/models/vault"
	"mdvault/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }

func doc(id, project string) models.Document {
	d := models.Document{ID: id, Title: "Doc " + id}
	if project != "" {
		d.Project = ptr(project)
	}
	return d
}

// newTestSession seeds a memory store and returns a loaded session on it.
func newTestSession(t *testing.T, docs ...models.Document) (*Session, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.Seed(docs...)
	s := NewSession("test-session", "user-1", store, nil, testLogger())
	require.NoError(t, s.Reload(context.Background()))
	return s, store
}

func projectOf(t *testing.T, store *memory.Store, id string) *string {
	t.Helper()
	p, ok := store.Project(id)
	require.True(t, ok, "document %s missing from store", id)
	return p
}
