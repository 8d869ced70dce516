package handler

import (
	"errors"
	"net/http"

	"mdvault/internal/domain"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrMutationInFlight):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrRemote):
		// Checked before ErrNotFound: a document missing upstream is still a
		// failed store call, not a missing local resource.
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleCascadeError reports a cascade that stopped part way. The body carries
// which documents were moved, which one failed and which were never tried, so
// the caller can show the torn state.
func handleCascadeError(w http.ResponseWriter, res *vaultSvc.CascadeResult, err error) {
	if res == nil || res.Failed == "" {
		handleError(w, err)
		return
	}

	remaining := res.Remaining
	if remaining == nil {
		remaining = []string{}
	}
	httputil.RespondErrorWithExtras(w, http.StatusBadGateway, err.Error(), map[string]interface{}{
		"path":      res.Path,
		"new_path":  res.NewPath,
		"affected":  res.Affected,
		"applied":   res.Applied,
		"failed":    res.Failed,
		"remaining": remaining,
		"torn":      res.Torn(),
	})
}

// sessionFor resolves the {id} path value to the caller's session, writing
// the error response itself when that fails.
func sessionFor(w http.ResponseWriter, r *http.Request, sessions vaultSvc.SessionManager) (vaultSvc.FolderSession, bool) {
	session, err := sessions.Get(httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	return session, true
}

// parseAndValidate decodes the JSON body into req and runs its ozzo rules.
func parseAndValidate(w http.ResponseWriter, r *http.Request, req validatable) error {
	if err := httputil.ParseJSON(w, r, req); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	if err := req.Validate(); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}
