package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Is lets the typed errors match their sentinels with errors.Is()
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrRemote marks any failure of a single call to the document store.
	ErrRemote = errors.New("remote document store call failed")

	// ErrMutationInFlight is returned when a folder or document mutation is
	// started while another one is still running in the same session.
	ErrMutationInFlight = errors.New("another mutation is in flight")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (session, folder, document)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RemoteError is the only failure kind the folder engine handles. It wraps a
// network, auth or status failure of one call to the document store without
// distinguishing client from server causes.
type RemoteError struct {
	Op         string // list, get, update, delete
	DocumentID string // empty for list
	Err        error
}

// NewRemoteError wraps err as a RemoteError for the given operation.
func NewRemoteError(op, documentID string, err error) *RemoteError {
	return &RemoteError{Op: op, DocumentID: documentID, Err: err}
}

func (e *RemoteError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote %s document %s: %v", e.Op, e.DocumentID, e.Err)
}

// Unwrap exposes the underlying cause (e.g. ErrNotFound from a store).
func (e *RemoteError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrRemote
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// StatusCode implements the HTTPError interface
func (e *RemoteError) StatusCode() int {
	return http.StatusBadGateway
}
