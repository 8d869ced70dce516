package vault

import (
	"sort"
	"strings"
)

// FolderNode is one folder of a freshly built tree. Nodes carry no identity
// beyond Path and are thrown away after every render.
type FolderNode struct {
	Name     string
	Path     string
	Children map[string]*FolderNode
	Docs     []Document

	root bool
}

// NewRootNode creates the nameless node every tree starts from.
func NewRootNode() *FolderNode {
	n := NewFolderNode("", "")
	n.root = true
	return n
}

// NewFolderNode creates an empty node at path.
func NewFolderNode(name, path string) *FolderNode {
	return &FolderNode{
		Name:     name,
		Path:     path,
		Children: make(map[string]*FolderNode),
		Docs:     []Document{},
	}
}

// EnsurePath walks segments from n, creating missing nodes, and returns the
// node at the end of the walk.
func (n *FolderNode) EnsurePath(segments []string) *FolderNode {
	node := n
	for _, name := range segments {
		child, ok := node.Children[name]
		if !ok {
			child = NewFolderNode(name, node.childPath(name))
			node.Children[name] = child
		}
		node = child
	}
	return node
}

// IsRoot reports whether n is the root of its tree.
func (n *FolderNode) IsRoot() bool { return n.root }

func (n *FolderNode) childPath(name string) string {
	if n.root {
		return name
	}
	return n.Path + PathSeparator + name
}

// SortedChildNames returns child names in ascending byte order.
func (n *FolderNode) SortedChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Child returns the named child or nil.
func (n *FolderNode) Child(name string) *FolderNode {
	return n.Children[name]
}

// IsEmpty reports whether the node has neither children nor documents. Such
// a node is rendered with an "(empty)" placeholder.
func (n *FolderNode) IsEmpty() bool {
	return len(n.Children) == 0 && len(n.Docs) == 0
}

// CollectDocuments returns every document in the subtree: the node's own
// documents first, then each child in sorted order.
func (n *FolderNode) CollectDocuments() []Document {
	result := make([]Document, 0, len(n.Docs))
	result = append(result, n.Docs...)
	for _, name := range n.SortedChildNames() {
		result = append(result, n.Children[name].CollectDocuments()...)
	}
	return result
}

// Walk visits n and every descendant depth-first in sorted order.
func (n *FolderNode) Walk(fn func(node *FolderNode)) {
	fn(n)
	for _, name := range n.SortedChildNames() {
		n.Children[name].Walk(fn)
	}
}

// Tree is the result of one build: the folder hierarchy plus the documents
// that have no project.
type Tree struct {
	Root     *FolderNode
	Unsorted []Document
}

// Lookup finds the folder at path, or nil when it is not in the tree. The
// root itself has no path; "" addresses a top-level folder with an empty name.
func (t *Tree) Lookup(path string) *FolderNode {
	node := t.Root
	for _, name := range strings.Split(path, PathSeparator) {
		node = node.Child(name)
		if node == nil {
			return nil
		}
	}
	return node
}

// FolderPaths lists every folder path in the tree in depth-first sorted order.
func (t *Tree) FolderPaths() []string {
	var paths []string
	t.Root.Walk(func(node *FolderNode) {
		if !node.IsRoot() {
			paths = append(paths, node.Path)
		}
	})
	return paths
}

// DocumentCount is the number of documents in the tree, unsorted included.
func (t *Tree) DocumentCount() int {
	return len(t.Root.CollectDocuments()) + len(t.Unsorted)
}
