package vault

// TreeView is what a presenter renders: the folder hierarchy with collapse
// state applied, followed by the unsorted bucket.
type TreeView struct {
	Folders       []*FolderView  `json:"folders" yaml:"folders"`
	Unsorted      []DocumentView `json:"unsorted" yaml:"unsorted"`
	DocumentCount int            `json:"document_count" yaml:"document_count"`
}

// FolderView is a rendered folder. Empty marks the "(empty)" placeholder.
type FolderView struct {
	Name      string         `json:"name" yaml:"name"`
	Path      string         `json:"path" yaml:"path"`
	Collapsed bool           `json:"collapsed" yaml:"collapsed"`
	Empty     bool           `json:"empty,omitempty" yaml:"empty,omitempty"`
	Folders   []*FolderView  `json:"folders" yaml:"folders,omitempty"`
	Documents []DocumentView `json:"documents" yaml:"documents,omitempty"`
}

// DocumentView is a rendered tree leaf (metadata only).
type DocumentView struct {
	ID      string  `json:"id" yaml:"id"`
	Label   string  `json:"label" yaml:"label"`
	Project *string `json:"project" yaml:"project"`
}

// IsBlank reports whether there is nothing at all to show.
func (v *TreeView) IsBlank() bool {
	return v.DocumentCount == 0 && len(v.Folders) == 0
}

// NewDocumentView builds the leaf view of a document.
func NewDocumentView(doc Document) DocumentView {
	return DocumentView{
		ID:      doc.ID,
		Label:   doc.Label(),
		Project: doc.Project,
	}
}
