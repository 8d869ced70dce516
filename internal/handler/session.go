package handler

import (
	"log/slog"
	"net/http"

	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/httputil"
)

// SessionHandler opens, reloads and closes folder sessions
type SessionHandler struct {
	sessions vaultSvc.SessionManager
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions vaultSvc.SessionManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// sessionResponse describes a session after it was opened or reloaded
type sessionResponse struct {
	ID            string   `json:"id"`
	DocumentCount int      `json:"document_count"`
	EmptyFolders  []string `json:"empty_folders"`
	Collapsed     []string `json:"collapsed"`
}

func newSessionResponse(session vaultSvc.FolderSession) sessionResponse {
	return sessionResponse{
		ID:            session.ID(),
		DocumentCount: len(session.Documents()),
		EmptyFolders:  session.EmptyFolders(),
		Collapsed:     session.CollapsedPaths(),
	}
}

// CreateSession opens a session and loads the document list
// POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context(), httputil.GetUserID(r), httputil.GetToken(r))
	if err != nil {
		h.logger.Warn("session create failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, newSessionResponse(session))
}

// CloseSession drops a session
// DELETE /api/sessions/{id}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reload refetches the document list. On failure the cached list stays and
// the caller gets 502.
// POST /api/sessions/{id}/reload
func (h *SessionHandler) Reload(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFor(w, r, h.sessions)
	if !ok {
		return
	}

	if err := session.Reload(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newSessionResponse(session))
}

// HealthCheck returns a simple health check response
// GET /health
func (h *SessionHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
