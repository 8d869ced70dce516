package handler

import (
	"log/slog"
	"net/http"

	models "mdvault/internal/domain/models/vault"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/httputil"
)

// DocumentHandler handles single-document reads, moves and deletes
type DocumentHandler struct {
	sessions vaultSvc.SessionManager
	logger   *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(sessions vaultSvc.SessionManager, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// GetDocument returns a document's current metadata
// GET /api/sessions/{id}/documents/{docID}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	doc, err := session.Document(r.Context(), r.PathValue("docID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.NewDocumentView(*doc))
}

// MoveDocument sets a document's project (drag and drop)
// PATCH /api/sessions/{id}/documents/{docID}
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	var req MoveDocumentRequest
	if err := parseAndValidate(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	doc, err := session.MoveDocument(r.Context(), r.PathValue("docID"), req.ProjectPath())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.NewDocumentView(*doc))
}

// DeleteDocument deletes a document
// DELETE /api/sessions/{id}/documents/{docID}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	if err := session.DeleteDocument(r.Context(), r.PathValue("docID")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
