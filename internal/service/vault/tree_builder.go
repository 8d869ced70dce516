package vault

import (
	"strings"

	models "mdvault/internal/domain/models/vault"
)

// BuildTree maps a flat document list and the empty-folder registry onto a
// nested folder tree.
//
// Every document with a project is attached to the node at its exact path,
// creating intermediate nodes on the way. Every registered empty folder is
// walked the same way without attaching anything, so it shows up even with
// zero documents. Paths are split on "/" verbatim: "a//b" yields a folder
// named "" between "a" and "b". Documents without a project go to Unsorted.
//
// Child order is not stored; presenters call SortedChildNames, which is
// independent of the order documents arrive in.
func BuildTree(docs []models.Document, emptyFolders []string) *models.Tree {
	tree := &models.Tree{
		Root:     models.NewRootNode(),
		Unsorted: []models.Document{},
	}

	for _, doc := range docs {
		if !doc.InFolder() {
			tree.Unsorted = append(tree.Unsorted, doc)
			continue
		}
		node := tree.Root.EnsurePath(strings.Split(*doc.Project, models.PathSeparator))
		node.Docs = append(node.Docs, doc)
	}

	for _, path := range emptyFolders {
		tree.Root.EnsurePath(strings.Split(path, models.PathSeparator))
	}

	return tree
}
