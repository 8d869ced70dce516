package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mdvault/internal/domain"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/metrics"

	"github.com/google/uuid"
)

// StoreFactory returns the document store a new session talks to. token is
// the caller's bearer token, for stores that forward it.
type StoreFactory func(token string) vaultRepo.DocumentStore

// sessionManager implements the SessionManager interface
type sessionManager struct {
	newStore StoreFactory
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new session manager
func NewSessionManager(newStore StoreFactory, m *metrics.Metrics, logger *slog.Logger) vaultSvc.SessionManager {
	return &sessionManager{
		newStore: newStore,
		metrics:  m,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session and loads the document list. A session whose
// initial load fails is discarded.
func (m *sessionManager) Create(ctx context.Context, owner, token string) (vaultSvc.FolderSession, error) {
	id := uuid.NewString()
	session := NewSession(id, owner, m.newStore(token), m.metrics, m.logger)

	if err := session.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()
	m.metrics.SessionOpened()

	m.logger.Info("session opened",
		"session_id", id,
		"owner", owner,
		"document_count", len(session.Documents()),
	)
	return session, nil
}

// Get returns the owner's session. Sessions of other owners are reported as
// not found.
func (m *sessionManager) Get(owner, id string) (vaultSvc.FolderSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || session.Owner() != owner {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("session %s not found", id)}
	}
	return session, nil
}

// Close drops a session
func (m *sessionManager) Close(owner, id string) error {
	if _, err := m.Get(owner, id); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	m.metrics.SessionClosed(1)

	m.logger.Info("session closed", "session_id", id, "owner", owner)
	return nil
}

// EvictIdle drops sessions whose last use is before cutoff. A session with a
// mutation in flight is never idle.
func (m *sessionManager) EvictIdle(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, session := range m.sessions {
		if session.busy.Load() {
			continue
		}
		if session.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.metrics.SessionClosed(evicted)
		m.logger.Info("idle sessions evicted", "count", evicted)
	}
	return evicted
}

// RunEviction evicts sessions idle for longer than ttl every interval until
// ctx is done.
func RunEviction(ctx context.Context, manager vaultSvc.SessionManager, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			manager.EvictIdle(now.Add(-ttl))
		}
	}
}
