package vault

import (
	models "mdvault/internal/domain/models/vault"
)

// NewTreeView turns a built tree into the presenter view. isCollapsed gives
// each folder its initial presentation; paths it does not know are expanded.
func NewTreeView(tree *models.Tree, isCollapsed func(path string) bool) *models.TreeView {
	view := &models.TreeView{
		Folders:       folderViews(tree.Root, isCollapsed),
		Unsorted:      make([]models.DocumentView, 0, len(tree.Unsorted)),
		DocumentCount: tree.DocumentCount(),
	}
	for _, doc := range tree.Unsorted {
		view.Unsorted = append(view.Unsorted, models.NewDocumentView(doc))
	}
	return view
}

func folderViews(parent *models.FolderNode, isCollapsed func(string) bool) []*models.FolderView {
	views := make([]*models.FolderView, 0, len(parent.Children))
	for _, name := range parent.SortedChildNames() {
		node := parent.Children[name]
		fv := &models.FolderView{
			Name:      node.Name,
			Path:      node.Path,
			Collapsed: isCollapsed(node.Path),
			Empty:     node.IsEmpty(),
			Folders:   folderViews(node, isCollapsed),
			Documents: make([]models.DocumentView, 0, len(node.Docs)),
		}
		for _, doc := range node.Docs {
			fv.Documents = append(fv.Documents, models.NewDocumentView(doc))
		}
		views = append(views, fv)
	}
	return views
}
