package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	models "mdvault/internal/domain/models/vault"
	"mdvault/internal/repository/memory"
	"mdvault/internal/service/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newTestShell(t *testing.T) (*Shell, *memory.Store, *bytes.Buffer) {
	t.Helper()
	store := memory.NewStore()
	store.Seed(
		models.Document{ID: "1", Title: "Intro", Project: ptr("World Building")},
		models.Document{ID: "2", Title: "Map", Project: ptr("World Building/Places")},
		models.Document{ID: "3", Title: "Loose"},
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := vault.NewSession("s", "vaultctl", store, nil, logger)
	require.NoError(t, session.Reload(context.Background()))

	var out bytes.Buffer
	return NewShell(session, &out), store, &out
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "", want: nil},
		{line: "  tree  ", want: []string{"tree"}},
		{line: `rename "World Building" Lore`, want: []string{"rename", "World Building", "Lore"}},
		{line: `mv 3 'a b/c'`, want: []string{"mv", "3", "a b/c"}},
		{line: `mv 3 ""`, want: []string{"mv", "3", ""}},
		{line: `mkdir "open`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShell_RenameQuotedFolder(t *testing.T) {
	sh, store, out := newTestShell(t)

	_, err := sh.Exec(context.Background(), `rename "World Building" Lore`)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "renamed World Building to Lore (2 documents moved)")

	p, _ := store.Project("2")
	assert.Equal(t, "Lore/Places", *p)
}

func TestShell_RmdirAndTree(t *testing.T) {
	sh, store, out := newTestShell(t)
	ctx := context.Background()

	_, err := sh.Exec(ctx, `rmdir "World Building/Places"`)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 documents will move to Unsorted")

	p, _ := store.Project("2")
	assert.Nil(t, p)

	out.Reset()
	_, err = sh.Exec(ctx, "tree")
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Places")
	assert.Contains(t, out.String(), "Unsorted")
}

func TestShell_CascadeFailureIsReported(t *testing.T) {
	sh, store, _ := newTestShell(t)
	store.FailOn(memory.OpUpdate, "2")

	_, err := sh.Exec(context.Background(), `rename "World Building" Lore`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped at document 2 after moving 1, 0 not attempted")
}

func TestShell_MkdirCollapseAndMove(t *testing.T) {
	sh, store, out := newTestShell(t)
	ctx := context.Background()

	for _, line := range []string{
		"mkdir Drafts/2024",
		"collapse Drafts",
		"mv 3 Drafts/2024",
	} {
		_, err := sh.Exec(ctx, line)
		require.NoError(t, err, line)
	}
	assert.Contains(t, out.String(), "created Drafts/2024")
	assert.Contains(t, out.String(), "moved Loose to Drafts/2024")

	p, _ := store.Project("3")
	assert.Equal(t, "Drafts/2024", *p)

	out.Reset()
	_, err := sh.Exec(ctx, "tree")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Drafts/ [+]")
	assert.NotContains(t, out.String(), "2024")

	_, err = sh.Exec(ctx, "mv 3")
	require.NoError(t, err)
	p, _ = store.Project("3")
	assert.Nil(t, p)
}

func TestShell_Show(t *testing.T) {
	sh, store, out := newTestShell(t)
	ctx := context.Background()

	_, err := sh.Exec(ctx, "show 2")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "title:   Map")
	assert.Contains(t, out.String(), "folder:  World Building/Places")

	store.FailOn(memory.OpGet, "3")
	_, err = sh.Exec(ctx, "show 3")
	assert.Error(t, err)
}

func TestShell_Errors(t *testing.T) {
	sh, _, _ := newTestShell(t)
	ctx := context.Background()

	_, err := sh.Exec(ctx, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = sh.Exec(ctx, "rename onlyone")
	assert.ErrorContains(t, err, "usage: rename <path> <new-path>")

	_, err = sh.Exec(ctx, "rmdir Missing")
	assert.Error(t, err)
}

func TestShell_Run(t *testing.T) {
	sh, _, out := newTestShell(t)

	err := sh.Run(context.Background(), strings.NewReader("docs\nbogus\nexit\ntree\n"))
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Intro")
	assert.Contains(t, s, "✗ unknown command")
	// Nothing after exit runs
	assert.NotContains(t, s, "Unsorted\n└──")
}
