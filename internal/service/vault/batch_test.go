package vault

import (
	"context"
	"errors"
	"testing"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRename(t *testing.T) {
	docs := []models.Document{
		doc("1", "a/b"),
		doc("2", "a/b/c"),
		doc("3", "other"),
		doc("4", "a/bc"),
		doc("5", ""),
	}

	batch := PlanRename(docs, models.RawFolderPath("a/b"), models.RawFolderPath("x/y"))

	assert.Equal(t, BatchRename, batch.Kind)
	require.Len(t, batch.Steps, 2)
	assert.Equal(t, "1", batch.Steps[0].DocumentID)
	assert.Equal(t, "x/y", *batch.Steps[0].To)
	assert.Equal(t, "a/b", *batch.Steps[0].From)
	assert.Equal(t, "2", batch.Steps[1].DocumentID)
	assert.Equal(t, "x/y/c", *batch.Steps[1].To)
}

func TestPlanUnsort(t *testing.T) {
	batch := PlanUnsort([]models.Document{doc("1", "a"), doc("2", "a/b")})

	assert.Equal(t, BatchUnsort, batch.Kind)
	assert.Equal(t, []string{"1", "2"}, DocumentIDs(batch.Steps))
	for _, step := range batch.Steps {
		assert.Nil(t, step.To)
	}
}

func TestBatch_Execute(t *testing.T) {
	boom := errors.New("boom")
	steps := []ProjectUpdate{{DocumentID: "1"}, {DocumentID: "2"}, {DocumentID: "3"}}

	tests := []struct {
		name       string
		failOn     string
		applied    []string
		notStarted []string
	}{
		{"all applied", "", []string{"1", "2", "3"}, []string{}},
		{"stop at second", "2", []string{"1"}, []string{"3"}},
		{"stop at first", "1", []string{}, []string{"2", "3"}},
		{"stop at last", "3", []string{"1", "2"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			batch := &Batch{Kind: BatchRename, Steps: steps}

			result := batch.Execute(context.Background(), func(_ context.Context, step ProjectUpdate) error {
				calls = append(calls, step.DocumentID)
				if step.DocumentID == tt.failOn {
					return boom
				}
				return nil
			})

			assert.Equal(t, tt.applied, DocumentIDs(result.Applied))
			assert.Equal(t, tt.notStarted, DocumentIDs(result.NotStarted))
			assert.Equal(t, tt.failOn == "", result.Complete())
			if tt.failOn == "" {
				assert.Nil(t, result.Failure)
				assert.Equal(t, tt.applied, calls)
				return
			}
			require.NotNil(t, result.Failure)
			assert.Equal(t, tt.failOn, result.Failure.Step.DocumentID)
			assert.ErrorIs(t, result.Err(), boom)
			assert.Equal(t, append(append([]string{}, tt.applied...), tt.failOn), calls)
		})
	}
}

func TestBatch_ExecuteStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	batch := &Batch{Steps: []ProjectUpdate{{DocumentID: "1"}, {DocumentID: "2"}}}

	result := batch.Execute(ctx, func(_ context.Context, step ProjectUpdate) error {
		cancel()
		return nil
	})

	assert.Equal(t, []string{"1"}, DocumentIDs(result.Applied))
	require.NotNil(t, result.Failure)
	assert.Equal(t, "2", result.Failure.Step.DocumentID)
	assert.ErrorIs(t, result.Err(), context.Canceled)
}

func TestCascadeError(t *testing.T) {
	remote := domain.NewRemoteError("update", "2", errors.New("timeout"))
	err := &CascadeError{
		Kind: BatchRename,
		Path: "a",
		Result: &BatchResult{
			Applied:    []ProjectUpdate{{DocumentID: "1"}},
			Failure:    &StepFailure{Step: ProjectUpdate{DocumentID: "2"}, Err: remote},
			NotStarted: []ProjectUpdate{{DocumentID: "3"}},
		},
	}

	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Contains(t, err.Error(), `rename of folder "a" stopped at document 2`)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "2", re.DocumentID)
}
