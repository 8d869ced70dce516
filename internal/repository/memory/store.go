package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultRepo "mdvault/internal/domain/repositories/vault"
)

// Operation names accepted by FailOn.
const (
	OpList   = "list"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ErrInjected is the cause carried by failures set up with FailOn.
var ErrInjected = errors.New("injected failure")

// Store is a concurrency-safe in-memory DocumentStore. It backs the local
// demo mode and the engine tests; FailOn makes single calls fail.
type Store struct {
	mu       sync.Mutex
	docs     map[string]models.Document
	order    []string
	failures map[string]error
	calls    []Call
	now      func() time.Time
}

// Call records one store call, in order.
type Call struct {
	Op      string
	ID      string
	Project *string
}

var _ vaultRepo.DocumentStore = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		docs:     make(map[string]models.Document),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// Seed adds or replaces documents. List order follows first insertion.
func (s *Store) Seed(docs ...models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if _, ok := s.docs[doc.ID]; !ok {
			s.order = append(s.order, doc.ID)
		}
		s.docs[doc.ID] = cloneDocument(doc)
	}
}

// FailOn makes the next calls of op on document id fail until cleared. An
// empty id matches every document; list failures use an empty id.
func (s *Store) FailOn(op, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failureKey(op, id)] = ErrInjected
}

// ClearFailures removes every injected failure
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// Calls returns the calls made so far
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Project returns the stored project of a document, for assertions.
func (s *Store) Project(id string) (*string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	return doc.Project, true
}

// ListDocuments returns every document in insertion order
func (s *Store) ListDocuments(ctx context.Context) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpList})

	if err := s.check(ctx, OpList, ""); err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneDocument(s.docs[id]))
	}
	return out, nil
}

// GetDocument returns one document
func (s *Store) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpGet, ID: id})

	if err := s.check(ctx, OpGet, id); err != nil {
		return nil, err
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, notFound(OpGet, id)
	}
	doc = cloneDocument(doc)
	return &doc, nil
}

// UpdateProject sets a document's project
func (s *Store) UpdateProject(ctx context.Context, id string, project *string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpUpdate, ID: id, Project: project})

	if err := s.check(ctx, OpUpdate, id); err != nil {
		return nil, err
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, notFound(OpUpdate, id)
	}
	doc.Project = clonePtr(project)
	doc.UpdatedAt = s.now()
	s.docs[id] = doc

	doc = cloneDocument(doc)
	return &doc, nil
}

// DeleteDocument removes a document
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpDelete, ID: id})

	if err := s.check(ctx, OpDelete, id); err != nil {
		return err
	}
	if _, ok := s.docs[id]; !ok {
		return notFound(OpDelete, id)
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// check returns the injected or context failure for a call. Caller holds mu.
func (s *Store) check(ctx context.Context, op, id string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewRemoteError(op, id, err)
	}
	if err, ok := s.failures[failureKey(op, id)]; ok {
		return domain.NewRemoteError(op, id, err)
	}
	if err, ok := s.failures[failureKey(op, "")]; ok {
		return domain.NewRemoteError(op, id, err)
	}
	return nil
}

// IDs returns the stored document IDs, sorted
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func failureKey(op, id string) string {
	return op + ":" + id
}

func notFound(op, id string) error {
	return domain.NewRemoteError(op, id, &domain.NotFoundError{
		Message: fmt.Sprintf("document %s not found", id),
	})
}

func cloneDocument(doc models.Document) models.Document {
	doc.Project = clonePtr(doc.Project)
	doc.FileName = clonePtr(doc.FileName)
	doc.FileType = clonePtr(doc.FileType)
	if doc.Tags != nil {
		doc.Tags = append([]string(nil), doc.Tags...)
	}
	return doc
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
