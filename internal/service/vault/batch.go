package vault

import (
	"context"
	"fmt"

	models "mdvault/internal/domain/models/vault"
)

// BatchKind names the cascade a batch was planned for.
type BatchKind string

const (
	BatchRename BatchKind = "rename"
	BatchUnsort BatchKind = "unsort"
)

// ProjectUpdate is one step of a batch: set a single document's project.
type ProjectUpdate struct {
	DocumentID string
	From       *string
	To         *string // nil = unsorted
}

// Batch is an ordered list of single-document updates executed one at a
// time. Each step is awaited before the next begins, so at most one update is
// ever in flight. The first failing step ends the batch; steps already
// applied stay applied and there is no rollback.
type Batch struct {
	Kind  BatchKind
	Steps []ProjectUpdate
}

// StepFailure pairs a failed step with its error.
type StepFailure struct {
	Step ProjectUpdate
	Err  error
}

// BatchResult records what a batch actually did. Failure is nil when every
// step was applied.
type BatchResult struct {
	Applied    []ProjectUpdate
	Failure    *StepFailure
	NotStarted []ProjectUpdate
}

// Err returns the failing step's error, or nil.
func (r *BatchResult) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure.Err
}

// Complete reports whether every step was applied.
func (r *BatchResult) Complete() bool {
	return r.Failure == nil && len(r.NotStarted) == 0
}

// ApplyFunc performs one step against some transport.
type ApplyFunc func(ctx context.Context, step ProjectUpdate) error

// Execute runs the steps in order. Context cancellation between steps counts
// as a failure of the step that would have run next.
func (b *Batch) Execute(ctx context.Context, apply ApplyFunc) *BatchResult {
	result := &BatchResult{}
	for i, step := range b.Steps {
		err := ctx.Err()
		if err == nil {
			err = apply(ctx, step)
		}
		if err == nil {
			result.Applied = append(result.Applied, step)
			continue
		}
		result.Failure = &StepFailure{Step: step, Err: err}
		result.NotStarted = append(result.NotStarted, b.Steps[i+1:]...)
		break
	}
	return result
}

// PlanRename builds the rename cascade: every document whose project is
// oldPath or below it gets the same relative position under newPath.
func PlanRename(docs []models.Document, oldPath, newPath models.FolderPath) *Batch {
	batch := &Batch{Kind: BatchRename}
	for _, doc := range docs {
		if doc.Project == nil {
			continue
		}
		rebased, ok := oldPath.Rebase(*doc.Project, newPath)
		if !ok {
			continue
		}
		batch.Steps = append(batch.Steps, ProjectUpdate{
			DocumentID: doc.ID,
			From:       doc.Project,
			To:         &rebased,
		})
	}
	return batch
}

// PlanUnsort builds the delete cascade: every document in the given subtree
// moves to unsorted.
func PlanUnsort(docs []models.Document) *Batch {
	batch := &Batch{Kind: BatchUnsort}
	for _, doc := range docs {
		batch.Steps = append(batch.Steps, ProjectUpdate{
			DocumentID: doc.ID,
			From:       doc.Project,
			To:         nil,
		})
	}
	return batch
}

// DocumentIDs lists the document IDs of steps.
func DocumentIDs(steps []ProjectUpdate) []string {
	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.DocumentID)
	}
	return ids
}

// CascadeError reports a cascade that stopped part way. Documents in Result's
// Applied list were already moved in the store; NotStarted kept their old
// project.
type CascadeError struct {
	Kind   BatchKind
	Path   string
	Result *BatchResult
}

func (e *CascadeError) Error() string {
	failed := e.Result.Failure
	return fmt.Sprintf("%s of folder %q stopped at document %s after %d update(s): %v",
		e.Kind, e.Path, failed.Step.DocumentID, len(e.Result.Applied), failed.Err)
}

// Unwrap exposes the failing step's error (normally a *domain.RemoteError).
func (e *CascadeError) Unwrap() error {
	return e.Result.Err()
}
