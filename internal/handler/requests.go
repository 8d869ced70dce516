package handler

import (
	"errors"

	"mdvault/internal/config"
	"mdvault/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type validatable interface {
	Validate() error
}

// CreateFolderRequest is the body of POST /api/sessions/{id}/folders
type CreateFolderRequest struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Parent, validation.Length(0, config.MaxFolderPathLength)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, config.MaxFolderNameLength)),
	)
}

// RenameFolderRequest is the body of PATCH /api/sessions/{id}/folders.
// An empty new_path is accepted and does nothing.
type RenameFolderRequest struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path"`
}

func (r RenameFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required, validation.Length(1, config.MaxFolderPathLength)),
		validation.Field(&r.NewPath, validation.Length(0, config.MaxFolderPathLength)),
	)
}

// SetCollapsedRequest is the body of PUT /api/sessions/{id}/collapsed
type SetCollapsedRequest struct {
	Path      string `json:"path"`
	Collapsed *bool  `json:"collapsed"`
}

func (r SetCollapsedRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Length(0, config.MaxFolderPathLength)),
		validation.Field(&r.Collapsed, validation.NotNil),
	)
}

// MoveDocumentRequest is the body of PATCH /api/sessions/{id}/documents/{docID}.
// project must be present; null or "" moves the document to unsorted.
type MoveDocumentRequest struct {
	Project httputil.OptionalString `json:"project"`
}

func (r MoveDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Project, validation.By(func(value interface{}) error {
			if v, ok := value.(httputil.OptionalString); !ok || !v.Present {
				return errors.New("is required")
			}
			return nil
		})),
	)
}

// ProjectPath returns the requested folder path, "" for unsorted.
func (r MoveDocumentRequest) ProjectPath() string {
	return r.Project.OrEmpty()
}
