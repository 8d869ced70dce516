package vault

import (
	"context"
	"time"

	"mdvault/internal/domain/models/vault"
)

// FolderSession is the session-scoped context every tree operation runs
// against: cached documents, empty folders and collapse state for one user.
type FolderSession interface {
	// ID returns the session identifier
	ID() string

	// Owner returns the user the session belongs to
	Owner() string

	// LastUsed returns the time of the last operation
	LastUsed() time.Time

	// Reload fetches the document list and prunes the empty-folder registry.
	// On failure the cached list is kept.
	Reload(ctx context.Context) error

	// Documents returns a copy of the cached document list
	Documents() []vault.Document

	// Tree builds a fresh tree from the cache and the empty-folder registry
	Tree() *vault.Tree

	// Render captures observed collapsed paths, then builds the presenter view
	Render(observedCollapsed []string) *vault.TreeView

	// Document fetches one document's current metadata from the store
	Document(ctx context.Context, id string) (*vault.Document, error)

	// Lookup builds a fresh tree and returns the node at path
	Lookup(path string) (*vault.FolderNode, error)

	// EmptyFolders returns the registered empty folder paths
	EmptyFolders() []string

	// CollapsedPaths returns the collapsed folder paths
	CollapsedPaths() []string

	// SetCollapsed records a collapse toggle
	SetCollapsed(path string, collapsed bool)

	// CreateFolder registers parent/name as an empty folder (no remote call)
	CreateFolder(parent, name string) (string, error)

	// RenameFolder moves every document at or below oldPath under newPath
	RenameFolder(ctx context.Context, oldPath, newPath string) (*CascadeResult, error)

	// DeleteFolder moves every document in node's subtree to unsorted
	DeleteFolder(ctx context.Context, path string, node *vault.FolderNode) (*CascadeResult, error)

	// MoveDocument sets one document's project ("" = unsorted)
	MoveDocument(ctx context.Context, id, newPath string) (*vault.Document, error)

	// DeleteDocument deletes one document, keeping its folder if it was the last one
	DeleteDocument(ctx context.Context, id string) error
}

// SessionManager owns the active sessions
type SessionManager interface {
	// Create opens a session for owner and performs the initial load
	Create(ctx context.Context, owner, token string) (FolderSession, error)

	// Get returns the owner's session by ID
	Get(owner, id string) (FolderSession, error)

	// Close drops a session
	Close(owner, id string) error

	// EvictIdle drops sessions unused since before cutoff and returns how many
	EvictIdle(cutoff time.Time) int
}

// CascadeResult summarizes a rename or delete cascade.
type CascadeResult struct {
	Path      string   `json:"path"`
	NewPath   string   `json:"new_path,omitempty"`
	Affected  int      `json:"affected"`
	Applied   []string `json:"applied"`
	Failed    string   `json:"failed,omitempty"`
	Remaining []string `json:"remaining,omitempty"`
	Reloaded  bool     `json:"reloaded"`
}

// Torn reports whether the cascade stopped after moving some but not all
// documents.
func (r *CascadeResult) Torn() bool {
	return r.Failed != "" && len(r.Applied) > 0
}
