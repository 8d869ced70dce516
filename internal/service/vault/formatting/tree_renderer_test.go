package formatting

import (
	"strings"
	"testing"

	models "mdvault/internal/domain/models/vault"

	"github.com/stretchr/testify/assert"
)

func folder(name, path string, children []*models.FolderView, docs ...models.DocumentView) *models.FolderView {
	return &models.FolderView{
		Name:      name,
		Path:      path,
		Empty:     len(children) == 0 && len(docs) == 0,
		Folders:   children,
		Documents: docs,
	}
}

func docView(id, label string) models.DocumentView {
	return models.DocumentView{ID: id, Label: label}
}

func TestTreeRenderer_RenderView(t *testing.T) {
	drafts := folder("drafts", "drafts", nil, docView("9", "hidden"))
	drafts.Collapsed = true

	view := &models.TreeView{
		Folders: []*models.FolderView{
			drafts,
			folder("notes", "notes", []*models.FolderView{
				folder("ideas", "notes/ideas", nil),
			}, docView("12", "todo.md")),
			folder("recipes", "recipes", nil, docView("7", "bread")),
		},
		Unsorted:      []models.DocumentView{docView("3", "scratch")},
		DocumentCount: 4,
	}

	want := strings.Join([]string{
		"/",
		"├── drafts/ [+]",
		"├── notes/",
		"│   ├── ideas/",
		"│   │   └── (empty)",
		"│   └── todo.md #12",
		"└── recipes/",
		"    └── bread #7",
		"Unsorted",
		"└── scratch #3",
	}, "\n")

	assert.Equal(t, want, NewTreeRenderer().RenderView(view))
}

func TestTreeRenderer_RenderViewBlank(t *testing.T) {
	r := NewTreeRenderer()

	assert.Equal(t, NoDocuments, r.RenderView(&models.TreeView{}))
	assert.Equal(t, NoDocuments, r.RenderView(nil))
}

func TestTreeRenderer_OnlyEmptyFolder(t *testing.T) {
	view := &models.TreeView{Folders: []*models.FolderView{folder("solo", "solo", nil)}}

	want := "/\n└── solo/\n    └── (empty)"
	assert.Equal(t, want, NewTreeRenderer().RenderView(view))
}

func TestTreeRenderer_OnlyUnsorted(t *testing.T) {
	view := &models.TreeView{
		Unsorted:      []models.DocumentView{docView("1", "a"), docView("2", "b")},
		DocumentCount: 2,
	}

	want := "Unsorted\n├── a #1\n└── b #2"
	assert.Equal(t, want, NewTreeRenderer().RenderView(view))
}
