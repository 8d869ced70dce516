package formatting

import (
	"fmt"
	"strings"

	models "mdvault/internal/domain/models/vault"
)

const (
	// EmptyPlaceholder is shown inside a folder with no children and no documents.
	EmptyPlaceholder = "(empty)"

	// CollapsedMarker follows a folder whose contents are hidden.
	CollapsedMarker = "[+]"

	// NoDocuments replaces the whole tree when there is nothing to show.
	NoDocuments = "No documents yet"

	unsortedHeading = "Unsorted"
)

// TreeNode represents a single line of the rendered tree.
type TreeNode struct {
	Name     string
	IsFolder bool
	Depth    int
	IsLast   bool   // Is this the last child of its parent?
	Metadata string // Pre-rendered metadata (e.g., "[+]" or "#42")
}

// TreeRenderer renders a hierarchical tree structure using ASCII box-drawing characters.
type TreeRenderer struct{}

// NewTreeRenderer creates a new TreeRenderer instance.
func NewTreeRenderer() *TreeRenderer {
	return &TreeRenderer{}
}

// RenderView renders a folder view the way the terminal presenter shows it.
//
// Example output:
//
//	/
//	├── drafts/ [+]
//	├── notes/
//	│   ├── ideas/
//	│   │   └── (empty)
//	│   └── todo.md #12
//	└── recipes/
//	    └── bread #7
//	Unsorted
//	└── scratch #3
func (r *TreeRenderer) RenderView(view *models.TreeView) string {
	if view == nil || view.IsBlank() {
		return NoDocuments
	}
	return r.Render(Flatten(view))
}

// Render converts a list of TreeNodes into a formatted tree string.
// Each node should have correct depth and IsLast flag set.
func (r *TreeRenderer) Render(nodes []TreeNode) string {
	if len(nodes) == 0 {
		return ""
	}

	var result strings.Builder

	// Track which depths still have siblings below (for continuation lines)
	continuations := make(map[int]bool)

	for i, node := range nodes {
		line := r.buildPrefix(node.Depth, node.IsLast, continuations) + node.Name

		// Add folder indicator (unless name already ends with /, e.g., root "/")
		if node.IsFolder && !strings.HasSuffix(node.Name, "/") {
			line += "/"
		}

		if node.Metadata != "" {
			line += " " + node.Metadata
		}

		result.WriteString(line)
		if i < len(nodes)-1 {
			result.WriteString("\n")
		}

		if node.IsLast {
			delete(continuations, node.Depth)
		} else {
			continuations[node.Depth] = true
		}
	}

	return result.String()
}

// buildPrefix creates the tree structure prefix for a node based on its depth and position.
// Column d carries a vertical line while the ancestor at depth d has siblings left.
func (r *TreeRenderer) buildPrefix(depth int, isLast bool, continuations map[int]bool) string {
	if depth == 0 {
		return ""
	}

	var prefix strings.Builder
	for d := 1; d < depth; d++ {
		if continuations[d] {
			prefix.WriteString("│   ")
		} else {
			prefix.WriteString("    ")
		}
	}

	if isLast {
		prefix.WriteString("└── ")
	} else {
		prefix.WriteString("├── ")
	}

	return prefix.String()
}

// Flatten lays a view out as render lines: the folder hierarchy under "/",
// then the Unsorted bucket when it has documents. Collapsed folders keep
// their line but hide their contents.
func Flatten(view *models.TreeView) []TreeNode {
	var nodes []TreeNode
	if len(view.Folders) > 0 {
		nodes = append(nodes, TreeNode{Name: "/", IsFolder: true, IsLast: true})
		nodes = appendFolders(nodes, view.Folders, nil, 1)
	}
	if len(view.Unsorted) > 0 {
		nodes = append(nodes, TreeNode{Name: unsortedHeading, IsLast: true})
		for i, doc := range view.Unsorted {
			nodes = append(nodes, documentNode(doc, 1, i == len(view.Unsorted)-1))
		}
	}
	return nodes
}

// appendFolders emits folders first, then documents, at one level.
func appendFolders(nodes []TreeNode, folders []*models.FolderView, docs []models.DocumentView, depth int) []TreeNode {
	total := len(folders) + len(docs)
	for i, folder := range folders {
		node := TreeNode{
			Name:     folder.Name,
			IsFolder: true,
			Depth:    depth,
			IsLast:   i == total-1,
		}
		if folder.Collapsed {
			node.Metadata = CollapsedMarker
			nodes = append(nodes, node)
			continue
		}
		nodes = append(nodes, node)
		if folder.Empty {
			nodes = append(nodes, TreeNode{Name: EmptyPlaceholder, Depth: depth + 1, IsLast: true})
			continue
		}
		nodes = appendFolders(nodes, folder.Folders, folder.Documents, depth+1)
	}
	for i, doc := range docs {
		nodes = append(nodes, documentNode(doc, depth, len(folders)+i == total-1))
	}
	return nodes
}

func documentNode(doc models.DocumentView, depth int, last bool) TreeNode {
	return TreeNode{
		Name:     doc.Label,
		Depth:    depth,
		IsLast:   last,
		Metadata: fmt.Sprintf("#%s", doc.ID),
	}
}
