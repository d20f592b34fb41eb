package git

import (
	"time"
)

// Commit represents the parts of a Git commit the statistics need.
type Commit struct {
	SHA     string
	When    time.Time // committer time, always UTC
	Author  AuthorInfo
	Parents []string // ordered; the first entry is the first parent
	Message string
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// FirstParent returns the SHA of the first parent, if any.
func (c Commit) FirstParent() (string, bool) {
	if len(c.Parents) == 0 {
		return "", false
	}
	return c.Parents[0], true
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// ContributorKey returns the identity string used for grouping contributors.
// The name and email are used verbatim, so "Alice" and "alice" are distinct.
func (a AuthorInfo) ContributorKey() string {
	return a.Name + " <" + a.Email + ">"
}

// FileDiff is one file's difference between a commit and its first parent.
type FileDiff struct {
	OldPath string // empty when the file was added
	NewPath string // empty when the file was deleted
	Patch   []byte // unified patch text; nil for binary content or path-only diffs
}

// Path returns the new path, falling back to the old path for deletions.
func (d FileDiff) Path() (string, bool) {
	if d.NewPath != "" {
		return d.NewPath, true
	}
	if d.OldPath != "" {
		return d.OldPath, true
	}
	return "", false
}

// HasPatch reports whether patch text is present.
func (d FileDiff) HasPatch() bool {
	return d.Patch != nil
}

// ReadOptions configures how a repository is read.
type ReadOptions struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}
