package vault

import (
	"path/filepath"
	"strings"
	"time"
)

// Document is the client's cached copy of a stored document. Only Project is
// ever rewritten by the folder engine; everything else is opaque.
type Document struct {
	ID        string    `json:"id" yaml:"id" db:"id"`
	Title     string    `json:"title" yaml:"title" db:"title"`
	Project   *string   `json:"project" yaml:"project" db:"project"` // NULL = unsorted
	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	FileName  *string   `json:"file_name,omitempty" yaml:"file_name,omitempty" db:"file_name"`
	FileType  *string   `json:"file_type,omitempty" yaml:"file_type,omitempty" db:"file_type"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at" db:"updated_at"`
}

// InFolder reports whether the document is attached to a folder. An empty
// project string counts as unsorted, same as NULL.
func (d *Document) InFolder() bool {
	return d.Project != nil && *d.Project != ""
}

// ProjectPath returns the project path, or "" for unsorted documents.
func (d *Document) ProjectPath() string {
	if d.Project == nil {
		return ""
	}
	return *d.Project
}

// FileExt returns the lower-cased extension of the attached file, without the dot.
func (d *Document) FileExt() string {
	if d.FileName == nil || *d.FileName == "" {
		return ""
	}
	ext := filepath.Ext(*d.FileName)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Label is the tree label: the title, plus the file extension when the title
// does not already end with it.
func (d *Document) Label() string {
	ext := d.FileExt()
	if ext == "" {
		return d.Title
	}
	if strings.HasSuffix(strings.ToLower(d.Title), "."+ext) {
		return d.Title
	}
	return d.Title + "." + ext
}

// ProjectPtr returns a pointer for path, treating "" as NULL (unsorted).
func ProjectPtr(path string) *string {
	if path == "" {
		return nil
	}
	return &path
}

// SplitTags parses the comma-separated tag column, dropping blanks.
func SplitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
