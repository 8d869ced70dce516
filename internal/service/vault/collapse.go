package vault

// CollapseState is the set of folder paths collapsed in the presenter. Entries
// may point at folders that no longer exist; rendering simply never asks for
// them. Only rename and delete cascades prune it.
type CollapseState struct {
	paths *pathSet
}

// NewCollapseState creates an empty collapse state
func NewCollapseState() *CollapseState {
	return &CollapseState{paths: newPathSet()}
}

// Capture unions the folders the presenter currently shows collapsed into
// the state. It runs before every rebuild so toggles made since the last
// write are not lost. "" is a real top-level folder name, as in Set.
func (c *CollapseState) Capture(observed []string) int {
	added := 0
	for _, p := range observed {
		if c.paths.Add(p) {
			added++
		}
	}
	return added
}

// Set records an explicit toggle.
func (c *CollapseState) Set(path string, collapsed bool) {
	if collapsed {
		c.paths.Add(path)
		return
	}
	c.paths.Remove(path)
}

// IsCollapsed reports whether a freshly built folder starts collapsed.
func (c *CollapseState) IsCollapsed(path string) bool { return c.paths.Contains(path) }

// Paths returns the collapsed paths.
func (c *CollapseState) Paths() []string { return c.paths.Paths() }

// Rebase applies a folder rename.
func (c *CollapseState) Rebase(oldPath, newPath string) int {
	return c.paths.Rebase(oldPath, newPath)
}

// RemoveSubtree forgets path and everything below it.
func (c *CollapseState) RemoveSubtree(path string) []string {
	return c.paths.RemoveSubtree(path)
}
