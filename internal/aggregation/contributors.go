package aggregation

import "github.com/masmgr/gitstats-go/internal/git"

// ContributorTracker counts commits per author identity.
// Identities are compared literally; "Alice <a@x>" and "alice <a@x>" are
// different contributors.
type ContributorTracker struct {
	counts map[string]int
}

// NewContributorTracker creates an empty tracker.
func NewContributorTracker() *ContributorTracker {
	return &ContributorTracker{counts: make(map[string]int)}
}

// Add counts one commit for its author.
func (t *ContributorTracker) Add(commit git.Commit) {
	t.counts[commit.Author.ContributorKey()]++
}

// Counts returns a copy of the per-contributor commit counts.
func (t *ContributorTracker) Counts() map[string]int {
	return copyCounts(t.counts)
}
