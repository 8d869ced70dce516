package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "vault.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestStore_SeedListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n, err := s.SeedDocuments(ctx, []models.Document{
		{Title: "Bread", Project: strPtr("recipes"), Tags: []string{"food", "baking"}},
		{Title: "Loose"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	byTitle := map[string]models.Document{}
	for _, d := range docs {
		byTitle[d.Title] = d
	}
	bread := byTitle["Bread"]
	assert.Equal(t, "recipes", *bread.Project)
	assert.Equal(t, []string{"food", "baking"}, bread.Tags)
	assert.False(t, bread.CreatedAt.IsZero())
	assert.Nil(t, byTitle["Loose"].Project)

	updated, err := s.UpdateProject(ctx, bread.ID, strPtr("kitchen/recipes"))
	require.NoError(t, err)
	assert.Equal(t, "kitchen/recipes", *updated.Project)

	cleared, err := s.UpdateProject(ctx, bread.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Project)

	require.NoError(t, s.DeleteDocument(ctx, bread.ID))
	_, err = s.GetDocument(ctx, bread.ID)
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MissingDocument(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.UpdateProject(ctx, "999", strPtr("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.DeleteDocument(ctx, "not-a-number")
	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "delete", remote.Op)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SeedReplace(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.SeedDocuments(ctx, []models.Document{{Title: "a"}, {Title: "b"}}, false)
	require.NoError(t, err)
	_, err = s.SeedDocuments(ctx, []models.Document{{Title: "c"}}, true)
	require.NoError(t, err)

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0].Title)
}
