package vault

import (
	"testing"

	models "mdvault/internal/domain/models/vault"

	"github.com/stretchr/testify/assert"
)

func TestEmptyFolderRegistry_AddIsIdempotent(t *testing.T) {
	r := NewEmptyFolderRegistry()

	assert.True(t, r.Add("a"))
	assert.False(t, r.Add("a"))
	assert.True(t, r.Add("b"))
	assert.Equal(t, []string{"a", "b"}, r.Paths())
	assert.Equal(t, 2, r.Len())
}

func TestEmptyFolderRegistry_Prune(t *testing.T) {
	tests := []struct {
		name     string
		registry []string
		docs     []models.Document
		pruned   []string
		kept     []string
	}{
		{
			name:     "exact match pruned",
			registry: []string{"a", "b"},
			docs:     []models.Document{doc("1", "a")},
			pruned:   []string{"a"},
			kept:     []string{"b"},
		},
		{
			name:     "descendant does not prune ancestor",
			registry: []string{"a"},
			docs:     []models.Document{doc("1", "a/b")},
			kept:     []string{"a"},
		},
		{
			name:     "unsorted documents prune nothing",
			registry: []string{"a"},
			docs:     []models.Document{doc("1", "")},
			kept:     []string{"a"},
		},
		{
			name:     "everything pruned",
			registry: []string{"x/y", "z"},
			docs:     []models.Document{doc("1", "z"), doc("2", "x/y")},
			pruned:   []string{"x/y", "z"},
			kept:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEmptyFolderRegistry()
			for _, p := range tt.registry {
				r.Add(p)
			}

			pruned := r.Prune(tt.docs)

			assert.Equal(t, tt.pruned, pruned)
			assert.Equal(t, tt.kept, r.Paths())
		})
	}
}

func TestEmptyFolderRegistry_Rebase(t *testing.T) {
	r := NewEmptyFolderRegistry()
	for _, p := range []string{"a/b", "a/b/c", "a/bc", "x"} {
		r.Add(p)
	}

	changed := r.Rebase("a/b", "x/y")

	assert.Equal(t, 2, changed)
	assert.Equal(t, []string{"x/y", "x/y/c", "a/bc", "x"}, r.Paths())
	assert.False(t, r.Contains("a/b"))
}

func TestEmptyFolderRegistry_RebaseMergesDuplicates(t *testing.T) {
	r := NewEmptyFolderRegistry()
	r.Add("old")
	r.Add("new")

	r.Rebase("old", "new")

	assert.Equal(t, []string{"new"}, r.Paths())
}

func TestEmptyFolderRegistry_RemoveSubtree(t *testing.T) {
	r := NewEmptyFolderRegistry()
	for _, p := range []string{"a", "a/b", "ab", "c"} {
		r.Add(p)
	}

	removed := r.RemoveSubtree("a")

	assert.Equal(t, []string{"a", "a/b"}, removed)
	assert.Equal(t, []string{"ab", "c"}, r.Paths())
}

func TestCollapseState(t *testing.T) {
	c := NewCollapseState()

	assert.Equal(t, 2, c.Capture([]string{"a", "b", "a"}))
	assert.True(t, c.IsCollapsed("a"))

	c.Set("b", false)
	c.Set("c", true)
	assert.Equal(t, []string{"a", "c"}, c.Paths())

	c.Capture([]string{"a/x"})
	c.Rebase("a", "z")
	assert.Equal(t, []string{"z", "c", "z/x"}, c.Paths())

	assert.Equal(t, []string{"z", "z/x"}, c.RemoveSubtree("z"))
	assert.Equal(t, []string{"c"}, c.Paths())
}

func TestCollapseState_EmptyNameFolder(t *testing.T) {
	captured := NewCollapseState()
	assert.Equal(t, 1, captured.Capture([]string{""}))
	assert.True(t, captured.IsCollapsed(""))

	toggled := NewCollapseState()
	toggled.Set("", true)
	assert.Equal(t, captured.Paths(), toggled.Paths())

	toggled.Set("", false)
	assert.False(t, toggled.IsCollapsed(""))
}
