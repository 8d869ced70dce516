package handler

import (
	"log/slog"
	"net/http"

	models "mdvault/internal/domain/models/vault"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/httputil"
)

// FolderHandler handles folder mutations
type FolderHandler struct {
	sessions vaultSvc.SessionManager
	logger   *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(sessions vaultSvc.SessionManager, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// folderSummary is what a client shows before confirming a folder delete
type folderSummary struct {
	Path          string                `json:"path"`
	Subfolders    int                   `json:"subfolders"`
	DocumentCount int                   `json:"document_count"`
	Documents     []models.DocumentView `json:"documents"`
}

func newFolderSummary(node *models.FolderNode) folderSummary {
	docs := node.CollectDocuments()
	views := make([]models.DocumentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, models.NewDocumentView(doc))
	}

	subfolders := -1 // Walk visits node itself
	node.Walk(func(*models.FolderNode) { subfolders++ })

	return folderSummary{
		Path:          node.Path,
		Subfolders:    subfolders,
		DocumentCount: len(docs),
		Documents:     views,
	}
}

// GetFolder summarizes the folder at ?path=: the documents a delete would
// move to unsorted.
// GET /api/sessions/{id}/folders?path=
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	node, err := session.Lookup(r.URL.Query().Get("path"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newFolderSummary(node))
}

// CreateFolder registers an empty folder in the session
// POST /api/sessions/{id}/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	var req CreateFolderRequest
	if err := parseAndValidate(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	path, err := session.CreateFolder(req.Parent, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// RenameFolder moves a folder and everything below it
// PATCH /api/sessions/{id}/folders
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	var req RenameFolderRequest
	if err := parseAndValidate(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	res, err := session.RenameFolder(r.Context(), req.Path, req.NewPath)
	if err != nil {
		handleCascadeError(w, res, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, res)
}

// DeleteFolder moves every document under ?path= to unsorted and forgets the
// folder. The folder is looked up in a tree built from the same state the
// client last rendered.
// DELETE /api/sessions/{id}/folders?path=
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	node, err := session.Lookup(path)
	if err != nil {
		handleError(w, err)
		return
	}

	res, err := session.DeleteFolder(r.Context(), path, node)
	if err != nil {
		handleCascadeError(w, res, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, res)
}
