package vault

import (
	models "mdvault/internal/domain/models/vault"
)

// pathSet is an insertion-ordered set of folder paths. It backs both the
// empty-folder registry and the collapse state; neither is authoritative, so
// entries are rewritten or dropped but never validated against the store.
type pathSet struct {
	order []string
	index map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{index: make(map[string]struct{})}
}

func (s *pathSet) Add(path string) bool {
	if _, ok := s.index[path]; ok {
		return false
	}
	s.index[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

func (s *pathSet) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

func (s *pathSet) Remove(path string) bool {
	if _, ok := s.index[path]; !ok {
		return false
	}
	delete(s.index, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *pathSet) Len() int { return len(s.order) }

func (s *pathSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// RemoveIf drops every entry matching fn and returns the dropped paths.
func (s *pathSet) RemoveIf(fn func(path string) bool) []string {
	var removed []string
	kept := s.order[:0]
	for _, p := range s.order {
		if fn(p) {
			delete(s.index, p)
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	s.order = kept
	return removed
}

// Rebase rewrites every entry at or below oldPath to sit under newPath,
// keeping order. Entries that collapse onto an existing path are merged.
func (s *pathSet) Rebase(oldPath, newPath string) int {
	changed := 0
	rebased := make([]string, 0, len(s.order))
	for _, p := range s.order {
		if np, ok := models.RebasePath(p, oldPath, newPath); ok {
			p = np
			changed++
		}
		rebased = append(rebased, p)
	}
	s.order = s.order[:0]
	s.index = make(map[string]struct{}, len(rebased))
	for _, p := range rebased {
		s.Add(p)
	}
	return changed
}

// RemoveSubtree drops path and every entry below it.
func (s *pathSet) RemoveSubtree(path string) []string {
	return s.RemoveIf(func(p string) bool { return models.IsWithin(p, path) })
}
