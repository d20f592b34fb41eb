package aggregation

import "github.com/masmgr/gitstats-go/internal/git"

// FileChurnTracker counts, per path, how many commits touched it.
//
// Only commits with a parent contribute: a root commit has nothing to be
// diffed against, so files it introduces are not counted for it.
type FileChurnTracker struct {
	counts map[string]int
}

// NewFileChurnTracker creates an empty tracker.
func NewFileChurnTracker() *FileChurnTracker {
	return &FileChurnTracker{
		counts: make(map[string]int),
	}
}

// Add records the files a commit changed relative to its first parent.
// Diffs without a resolvable path are ignored.
func (t *FileChurnTracker) Add(commit git.Commit, diffs []git.FileDiff) {
	if commit.IsRoot() {
		return
	}

	for _, d := range diffs {
		path, ok := d.Path()
		if !ok {
			continue
		}
		t.counts[path]++
	}
}

// Counts returns a copy of the per-path commit counts.
func (t *FileChurnTracker) Counts() map[string]int {
	return copyCounts(t.counts)
}
