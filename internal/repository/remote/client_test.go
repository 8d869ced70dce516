package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mdvault/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/", Token: "secret"})
}

func TestClient_ListDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/docs", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id": 7, "title": "Bread", "project": "recipes/baking", "tags": "food, ,bread",
			 "file_name": null, "created_at": "2024-03-01 10:20:30", "updated_at": "2024-03-02T08:00:00Z"},
			{"id": "abc", "title": "Loose", "project": null, "tags": ["x"]}
		]`)
	})

	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "7", docs[0].ID)
	assert.Equal(t, "recipes/baking", *docs[0].Project)
	assert.Equal(t, []string{"food", "bread"}, docs[0].Tags)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), docs[0].CreatedAt)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), docs[0].UpdatedAt)

	assert.Equal(t, "abc", docs[1].ID)
	assert.Nil(t, docs[1].Project)
	assert.Equal(t, []string{"x"}, docs[1].Tags)
}

func TestClient_UpdateProject(t *testing.T) {
	tests := []struct {
		name    string
		project *string
		want    string
	}{
		{"set", strPtr("a/b"), `{"project":"a/b"}`},
		{"clear", nil, `{"project":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/api/docs/42", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.want, string(body))

				var in map[string]*string
				require.NoError(t, json.Unmarshal(body, &in))
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"id": 42, "title": "Doc", "project": in["project"],
				})
			})

			doc, err := c.UpdateProject(context.Background(), "42", tt.project)
			require.NoError(t, err)
			assert.Equal(t, "42", doc.ID)
			assert.Equal(t, tt.project, doc.Project)
		})
	}
}

func TestClient_DeleteDocument(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/docs/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteDocument(context.Background(), "9"))
	assert.True(t, called)
}

func TestClient_ErrorsAreRemoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		cause  error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrForbidden},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"server error", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := c.GetDocument(context.Background(), "1")

			var remote *domain.RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, "get", remote.Op)
			assert.Equal(t, "1", remote.DocumentID)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.ListDocuments(context.Background())

	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"oops"`)
	})

	_, err := c.ListDocuments(context.Background())

	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestClient_WithToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer other", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	})

	docs, err := c.WithToken("other").ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func strPtr(s string) *string { return &s }
