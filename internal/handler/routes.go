package handler

import (
	"log/slog"
	"net/http"

	vaultSvc "mdvault/internal/domain/services/vault"
)

// RegisterRoutes wires the session API onto mux (Go 1.22+ patterns)
func RegisterRoutes(mux *http.ServeMux, sessions vaultSvc.SessionManager, logger *slog.Logger) {
	sessionHandler := NewSessionHandler(sessions, logger)
	treeHandler := NewTreeHandler(sessions, logger)
	folderHandler := NewFolderHandler(sessions, logger)
	documentHandler := NewDocumentHandler(sessions, logger)

	// Health check
	mux.HandleFunc("GET /health", sessionHandler.HealthCheck)

	// Session routes
	mux.HandleFunc("POST /api/sessions", sessionHandler.CreateSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessionHandler.CloseSession)
	mux.HandleFunc("POST /api/sessions/{id}/reload", sessionHandler.Reload)

	// Tree routes
	mux.HandleFunc("GET /api/sessions/{id}/tree", treeHandler.GetTree)
	mux.HandleFunc("PUT /api/sessions/{id}/collapsed", treeHandler.SetCollapsed)

	// Folder routes (folders are addressed by path, not ID)
	mux.HandleFunc("GET /api/sessions/{id}/folders", folderHandler.GetFolder)
	mux.HandleFunc("POST /api/sessions/{id}/folders", folderHandler.CreateFolder)
	mux.HandleFunc("PATCH /api/sessions/{id}/folders", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/sessions/{id}/folders", folderHandler.DeleteFolder)

	// Document routes
	mux.HandleFunc("GET /api/sessions/{id}/documents/{docID}", documentHandler.GetDocument)
	mux.HandleFunc("PATCH /api/sessions/{id}/documents/{docID}", documentHandler.MoveDocument)
	mux.HandleFunc("DELETE /api/sessions/{id}/documents/{docID}", documentHandler.DeleteDocument)
}
