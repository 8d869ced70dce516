package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/metrics"
)

// Session is the context object for one user's folder view: the cached
// document list, the empty-folder registry and the collapse state. All three
// are owned by the session and never shared.
//
// In-memory state is guarded by mu and never held across a store call. The
// busy flag admits one mutation at a time; a second one fails fast with
// domain.ErrMutationInFlight instead of interleaving with the first.
type Session struct {
	id      string
	owner   string
	store   vaultRepo.DocumentStore
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu           sync.Mutex
	documents    []models.Document
	emptyFolders *EmptyFolderRegistry
	collapsed    *CollapseState
	lastUsed     time.Time

	busy atomic.Bool
}

var _ vaultSvc.FolderSession = (*Session)(nil)

// NewSession creates a session with an empty cache. Call Reload to load the
// document list.
func NewSession(
	id, owner string,
	store vaultRepo.DocumentStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Session {
	return &Session{
		id:           id,
		owner:        owner,
		store:        store,
		logger:       logger.With("session_id", id),
		metrics:      m,
		documents:    []models.Document{},
		emptyFolders: NewEmptyFolderRegistry(),
		collapsed:    NewCollapseState(),
		lastUsed:     time.Now(),
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Owner returns the user the session belongs to
func (s *Session) Owner() string { return s.owner }

// LastUsed returns the time of the last operation
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// Reload replaces the cached document list with the store's and prunes the
// empty-folder registry. On failure nothing changes and the previous list
// stays on display.
func (s *Session) Reload(ctx context.Context) error {
	docs, err := s.store.ListDocuments(ctx)
	s.metrics.RecordRemoteCall("list", err)
	if err != nil {
		s.metrics.RecordReloadAborted()
		s.logger.Warn("reload aborted, keeping cached documents", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = docs
	pruned := s.emptyFolders.Prune(docs)
	s.touch()

	s.logger.Debug("documents reloaded",
		"document_count", len(docs),
		"pruned_empty_folders", pruned,
	)
	return nil
}

// Documents returns a copy of the cached document list
func (s *Session) Documents() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Tree builds a fresh tree from the cache and the empty-folder registry
func (s *Session) Tree() *models.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildTree(s.documents, s.emptyFolders.Paths())
}

// Render is the read-modify-write around a presenter render: folders the
// presenter currently shows collapsed are merged into the collapse state,
// then the tree is rebuilt and every folder takes its initial collapsed flag
// from the state.
func (s *Session) Render(observedCollapsed []string) *models.TreeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed.Capture(observedCollapsed)
	s.touch()
	tree := BuildTree(s.documents, s.emptyFolders.Paths())
	return NewTreeView(tree, s.collapsed.IsCollapsed)
}

// Lookup builds a fresh tree and returns the folder at path
func (s *Session) Lookup(path string) (*models.FolderNode, error) {
	node := s.Tree().Lookup(path)
	if node == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", path)}
	}
	return node, nil
}

// EmptyFolders returns the registered empty folder paths
func (s *Session) EmptyFolders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emptyFolders.Paths()
}

// CollapsedPaths returns the collapsed folder paths
func (s *Session) CollapsedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed.Paths()
}

// Document fetches one document's current metadata from the store. The
// cache is not updated.
func (s *Session) Document(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	s.metrics.RecordRemoteCall("get", err)
	if err != nil {
		return nil, asRemoteError("get", id, err)
	}

	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
	return doc, nil
}

// SetCollapsed records a collapse toggle made in the presenter
func (s *Session) SetCollapsed(path string, collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed.Set(path, collapsed)
	s.touch()
}

// beginMutation claims the session for one mutation. The returned func
// releases it.
func (s *Session) beginMutation(op string) (func(), error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Debug("mutation rejected", "op", op)
		return nil, fmt.Errorf("%s: %w", op, domain.ErrMutationInFlight)
	}
	return func() { s.busy.Store(false) }, nil
}

// updateProject is the single-document step every cascade is made of.
func (s *Session) updateProject(ctx context.Context, step ProjectUpdate) error {
	_, err := s.store.UpdateProject(ctx, step.DocumentID, step.To)
	s.metrics.RecordRemoteCall("update", err)

	s.mu.Lock()
	s.touch()
	s.mu.Unlock()

	if err != nil {
		return asRemoteError("update", step.DocumentID, err)
	}
	s.logger.Debug("document project updated",
		"document_id", step.DocumentID,
		"from", step.From,
		"to", step.To,
	)
	return nil
}

// reloadAfterMutation refreshes the cache. A failed reload is not a failed
// mutation: the writes went through and the next reload reconciles.
func (s *Session) reloadAfterMutation(ctx context.Context) bool {
	return s.Reload(ctx) == nil
}

func asRemoteError(op, id string, err error) error {
	if errors.Is(err, domain.ErrRemote) {
		return err
	}
	return domain.NewRemoteError(op, id, err)
}
