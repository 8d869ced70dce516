package vault

import (
	"testing"

	"mdvault/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFolderPath(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "single", raw: "Chapters", want: "Chapters"},
		{name: "nested", raw: "World Building/Places", want: "World Building/Places"},
		{name: "trims whitespace", raw: "  a/b \n", want: "a/b"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "double slash", raw: "a//b", wantErr: true},
		{name: "leading slash", raw: "/a", wantErr: true},
		{name: "trailing slash", raw: "a/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseFolderPath(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestRawFolderPathKeepsEmptySegments(t *testing.T) {
	p := RawFolderPath("a//b")
	assert.Equal(t, []string{"a", "", "b"}, p.Segments())
	assert.Equal(t, "b", p.Name())
	assert.Equal(t, "a/", p.Parent().String())
}

func TestFolderPath_Navigation(t *testing.T) {
	p := RawFolderPath("a/b/c")
	assert.Equal(t, "c", p.Name())
	assert.Equal(t, "a/b", p.Parent().String())
	assert.True(t, RawFolderPath("a").Parent().IsZero())
	assert.Equal(t, "a/b/c/d", p.Child("d").String())
	assert.Equal(t, "top", FolderPath{}.Child("top").String())
}

func TestFolderPath_Contains(t *testing.T) {
	p := RawFolderPath("a/b")
	assert.True(t, p.Contains("a/b"))
	assert.True(t, p.Contains("a/b/c"))
	assert.False(t, p.Contains("a/bc"))
	assert.False(t, p.Contains("a"))
}

func TestRebasePath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "a/b", want: "x/y", wantOK: true},
		{path: "a/b/c", want: "x/y/c", wantOK: true},
		{path: "a/bc", want: "a/bc", wantOK: false},
		{path: "other", want: "other", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := RebasePath(tt.path, "a/b", "x/y")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	got, ok := RawFolderPath("a").Rebase("a/b", RawFolderPath("z"))
	assert.True(t, ok)
	assert.Equal(t, "z/b", got)
}
