package vault

import (
	"fmt"
	"strings"

	"mdvault/internal/domain"
)

// PathSeparator separates folder names in a project path.
const PathSeparator = "/"

// FolderPath is the identity of a folder: the "/"-joined names from the root.
// Two folders are the same iff their paths are byte-equal. As a parent, the
// zero value stands for the top level of the tree.
type FolderPath struct {
	raw string
}

// ParseFolderPath validates user input for a new folder location. Surrounding
// whitespace is trimmed; empty input and empty segments ("a//b", "/a", "a/")
// are rejected.
func ParseFolderPath(raw string) (FolderPath, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FolderPath{}, &domain.ValidationError{Message: "folder path cannot be empty"}
	}
	for i, segment := range strings.Split(raw, PathSeparator) {
		if segment == "" {
			return FolderPath{}, &domain.ValidationError{
				Message: fmt.Sprintf("folder path %q has an empty segment at position %d", raw, i),
			}
		}
	}
	return FolderPath{raw: raw}, nil
}

// RawFolderPath wraps a path that already exists in the store (a document's
// project or a registry entry). No normalization is performed, so empty
// segments are kept as literal folder names.
func RawFolderPath(raw string) FolderPath {
	return FolderPath{raw: raw}
}

func (p FolderPath) String() string { return p.raw }

// IsZero reports whether p is the empty path.
func (p FolderPath) IsZero() bool { return p.raw == "" }

// Segments splits the path into folder names. Empty segments are kept.
func (p FolderPath) Segments() []string {
	return strings.Split(p.raw, PathSeparator)
}

// Name returns the last segment.
func (p FolderPath) Name() string {
	if i := strings.LastIndex(p.raw, PathSeparator); i >= 0 {
		return p.raw[i+1:]
	}
	return p.raw
}

// Parent returns the enclosing folder (root for top-level folders).
func (p FolderPath) Parent() FolderPath {
	if i := strings.LastIndex(p.raw, PathSeparator); i >= 0 {
		return FolderPath{raw: p.raw[:i]}
	}
	return FolderPath{}
}

// Child appends a folder name to p; the zero path yields a top-level folder.
func (p FolderPath) Child(name string) FolderPath {
	if p.raw == "" {
		return FolderPath{raw: name}
	}
	return FolderPath{raw: p.raw + PathSeparator + name}
}

// Contains reports whether other is p itself or one of its descendants.
func (p FolderPath) Contains(other string) bool {
	return IsWithin(other, p.raw)
}

// Rebase moves other from under p to under to.
func (p FolderPath) Rebase(other string, to FolderPath) (string, bool) {
	return RebasePath(other, p.raw, to.raw)
}

// IsWithin reports whether path equals folder or starts with folder + "/".
func IsWithin(path, folder string) bool {
	return path == folder || strings.HasPrefix(path, folder+PathSeparator)
}

// RebasePath rewrites path when it is oldPrefix or a descendant of it: an exact
// match becomes newPrefix, a descendant keeps its remainder after oldPrefix.
// Paths outside oldPrefix are returned unchanged with ok=false.
func RebasePath(path, oldPrefix, newPrefix string) (string, bool) {
	if path == oldPrefix {
		return newPrefix, true
	}
	if strings.HasPrefix(path, oldPrefix+PathSeparator) {
		return newPrefix + path[len(oldPrefix):], true
	}
	return path, false
}
