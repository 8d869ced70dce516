package vault

import (
	"context"
	"testing"
	"time"

	"mdvault/internal/domain"
	vaultRepo "mdvault/internal/domain/repositories/vault"
	"mdvault/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(store *memory.Store) *sessionManager {
	factory := func(string) vaultRepo.DocumentStore { return store }
	return NewSessionManager(factory, nil, testLogger()).(*sessionManager)
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	store := memory.NewStore()
	store.Seed(doc("1", "a"))
	m := newTestManager(store)

	session, err := m.Create(context.Background(), "alice", "token")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID())
	assert.Len(t, session.Documents(), 1)

	got, err := m.Get("alice", session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = m.Get("bob", session.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other, err := m.Create(context.Background(), "alice", "token")
	require.NoError(t, err)
	assert.NotEqual(t, session.ID(), other.ID())
}

func TestSessionManager_CreateFailsWhenLoadFails(t *testing.T) {
	store := memory.NewStore()
	store.FailOn(memory.OpList, "")
	m := newTestManager(store)

	_, err := m.Create(context.Background(), "alice", "token")

	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Empty(t, m.sessions)
}

func TestSessionManager_Close(t *testing.T) {
	m := newTestManager(memory.NewStore())
	session, err := m.Create(context.Background(), "alice", "")
	require.NoError(t, err)

	assert.ErrorIs(t, m.Close("bob", session.ID()), domain.ErrNotFound)
	require.NoError(t, m.Close("alice", session.ID()))

	_, err = m.Get("alice", session.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionManager_EvictIdle(t *testing.T) {
	m := newTestManager(memory.NewStore())
	old, err := m.Create(context.Background(), "alice", "")
	require.NoError(t, err)
	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	fresh, err := m.Create(context.Background(), "alice", "")
	require.NoError(t, err)

	assert.Equal(t, 1, m.EvictIdle(cutoff))

	_, err = m.Get("alice", old.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = m.Get("alice", fresh.ID())
	assert.NoError(t, err)
}

func TestSessionManager_EvictIdleSkipsBusySession(t *testing.T) {
	m := newTestManager(memory.NewStore())
	created, err := m.Create(context.Background(), "alice", "")
	require.NoError(t, err)
	session := created.(*Session)

	release, err := session.beginMutation("rename folder")
	require.NoError(t, err)

	cutoff := time.Now().Add(time.Hour)
	assert.Equal(t, 0, m.EvictIdle(cutoff))
	_, err = m.Get("alice", session.ID())
	require.NoError(t, err)

	release()
	assert.Equal(t, 1, m.EvictIdle(cutoff))
}

func TestSession_CascadeStepsRefreshLastUsed(t *testing.T) {
	s, _ := newTestSession(t, doc("1", "a"), doc("2", "a"))
	before := s.LastUsed()
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, s.updateProject(context.Background(), ProjectUpdate{DocumentID: "1", To: ptr("b")}))

	assert.True(t, s.LastUsed().After(before))
}
