package vault

import (
	models "mdvault/internal/domain/models/vault"
)

// EmptyFolderRegistry holds folders that exist only because a user created
// them (or emptied them) and no document sits at that exact path yet.
// It lives for the session and is never sent to the store.
type EmptyFolderRegistry struct {
	paths *pathSet
}

// NewEmptyFolderRegistry creates an empty registry
func NewEmptyFolderRegistry() *EmptyFolderRegistry {
	return &EmptyFolderRegistry{paths: newPathSet()}
}

// Add registers path; it reports false when it was already present.
func (r *EmptyFolderRegistry) Add(path string) bool { return r.paths.Add(path) }

// Contains reports whether path is registered.
func (r *EmptyFolderRegistry) Contains(path string) bool { return r.paths.Contains(path) }

// Paths returns the registered paths in registration order.
func (r *EmptyFolderRegistry) Paths() []string { return r.paths.Paths() }

// Len returns the number of registered paths.
func (r *EmptyFolderRegistry) Len() int { return r.paths.Len() }

// Rebase applies a folder rename to every registered path.
func (r *EmptyFolderRegistry) Rebase(oldPath, newPath string) int {
	return r.paths.Rebase(oldPath, newPath)
}

// RemoveSubtree forgets path and everything registered below it.
func (r *EmptyFolderRegistry) RemoveSubtree(path string) []string {
	return r.paths.RemoveSubtree(path)
}

// Prune drops every path that some document now holds exactly. Prefix
// relationships are ignored: a folder whose subfolder gained documents stays
// registered until it holds a document itself.
func (r *EmptyFolderRegistry) Prune(docs []models.Document) []string {
	occupied := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc.Project != nil {
			occupied[*doc.Project] = struct{}{}
		}
	}
	return r.paths.RemoveIf(func(p string) bool {
		_, ok := occupied[p]
		return ok
	})
}
