package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/httputil"
	"mdvault/internal/service/vault/formatting"
)

// TreeHandler handles tree rendering and collapse toggles
type TreeHandler struct {
	sessions vaultSvc.SessionManager
	renderer *formatting.TreeRenderer
	logger   *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(sessions vaultSvc.SessionManager, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		sessions: sessions,
		renderer: formatting.NewTreeRenderer(),
		logger:   logger,
	}
}

// GetTree renders the session's folder tree. Every ?collapsed= value is a
// folder the presenter currently shows collapsed; those are merged into the
// collapse state before the tree is rebuilt.
// GET /api/sessions/{id}/tree?collapsed=a&format=json|yaml|text
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	query := r.URL.Query()
	format := query.Get("format")
	switch format {
	case "", "json", "yaml", "text":
	default:
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	view := session.Render(query["collapsed"])

	switch format {
	case "yaml":
		httputil.RespondYAML(w, http.StatusOK, view)
	case "text":
		httputil.RespondText(w, http.StatusOK, h.renderer.RenderView(view))
	default:
		httputil.RespondJSON(w, http.StatusOK, view)
	}
}

// SetCollapsed records a single collapse toggle
// PUT /api/sessions/{id}/collapsed
func (h *TreeHandler) SetCollapsed(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	var req SetCollapsedRequest
	if err := parseAndValidate(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	session.SetCollapsed(req.Path, *req.Collapsed)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"collapsed": session.CollapsedPaths(),
	})
}
