package coursesync

import (
	"fmt"
	"slices"
	"strings"
)

// ChangeStatus describes what happened to a path upstream.
type ChangeStatus int

const (
	// Unchanged paths need no work.
	Unchanged ChangeStatus = iota
	// Added paths are new upstream.
	Added
	// Modified paths exist upstream with different content.
	Modified
	// Deleted paths no longer exist upstream.
	Deleted
)

func (s ChangeStatus) String() string {
	switch s {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Change is one path reported by a diff source.
type Change struct {
	Path   string // Slash-separated, relative to the repository root
	Status ChangeStatus
}

// ChangeSet is the set of paths touched by an upstream change, ordered by
// path once Sort has run.
type ChangeSet struct {
	Changes []Change
}

// Add records one path.
func (c *ChangeSet) Add(path string, status ChangeStatus) {
	c.Changes = append(c.Changes, Change{Path: path, Status: status})
}

// Sort orders the changes by path so runs are reproducible.
func (c *ChangeSet) Sort() {
	slices.SortStableFunc(c.Changes, func(a, b Change) int {
		return strings.Compare(a.Path, b.Path)
	})
}

// DiffStats counts a change set by status.
type DiffStats struct {
	Added     int
	Modified  int
	Deleted   int
	Unchanged int
}

func (s DiffStats) String() string {
	return fmt.Sprintf("%d added, %d modified, %d deleted", s.Added, s.Modified, s.Deleted)
}

// Stats counts the changes by status.
func (c *ChangeSet) Stats() DiffStats {
	var s DiffStats
	for _, ch := range c.Changes {
		switch ch.Status {
		case Added:
			s.Added++
		case Modified:
			s.Modified++
		case Deleted:
			s.Deleted++
		default:
			s.Unchanged++
		}
	}
	return s
}

// HasChanges reports whether any path was added, modified or deleted.
func (c *ChangeSet) HasChanges() bool {
	return slices.ContainsFunc(c.Changes, func(ch Change) bool {
		return ch.Status != Unchanged
	})
}
