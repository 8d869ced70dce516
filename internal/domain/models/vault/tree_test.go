package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleTree() *Tree {
	root := NewRootNode()
	root.EnsurePath([]string{"a"}).Docs = []Document{{ID: "1"}}
	root.EnsurePath([]string{"a", "b"}).Docs = []Document{{ID: "2"}}
	root.EnsurePath([]string{"a", "Z"}).Docs = []Document{{ID: "3"}}
	root.EnsurePath([]string{"empty"})
	return &Tree{Root: root, Unsorted: []Document{{ID: "4"}}}
}

func TestFolderNode_EnsurePathBuildsPaths(t *testing.T) {
	tree := sampleTree()

	b := tree.Lookup("a/b")
	require.NotNil(t, b)
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, "a/b", b.Path)
	assert.Same(t, b, tree.Root.EnsurePath([]string{"a", "b"}))
}

func TestFolderNode_CollectDocumentsOrder(t *testing.T) {
	tree := sampleTree()

	var ids []string
	for _, d := range tree.Lookup("a").CollectDocuments() {
		ids = append(ids, d.ID)
	}
	// own documents first, then children in byte order ("Z" < "b")
	assert.Equal(t, []string{"1", "3", "2"}, ids)
}

func TestTree_LookupAndPaths(t *testing.T) {
	tree := sampleTree()

	assert.Nil(t, tree.Lookup("missing"))
	assert.Nil(t, tree.Lookup("a/b/c"))
	assert.True(t, tree.Lookup("empty").IsEmpty())
	assert.Equal(t, []string{"a", "a/Z", "a/b", "empty"}, tree.FolderPaths())
	assert.Equal(t, 4, tree.DocumentCount())
}

func TestDocument_Label(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{name: "no file", doc: Document{Title: "Notes"}, want: "Notes"},
		{name: "appends extension", doc: Document{Title: "Reading list", FileName: strPtr("list.TXT")}, want: "Reading list.txt"},
		{name: "title has extension", doc: Document{Title: "plan.md", FileName: strPtr("plan.md")}, want: "plan.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.Label())
		})
	}
}

func TestDocument_Unsorted(t *testing.T) {
	assert.False(t, (&Document{}).InFolder())
	assert.False(t, (&Document{Project: strPtr("")}).InFolder())
	assert.True(t, (&Document{Project: strPtr("a")}).InFolder())
	assert.Nil(t, ProjectPtr(""))
	assert.Equal(t, "a", *ProjectPtr("a"))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"draft", "plot"}, SplitTags(" draft, ,plot "))
	assert.Nil(t, SplitTags(""))
	assert.Equal(t, "draft,plot", JoinTags([]string{"draft", "plot"}))
}
