package git

import "context"

// CommitWalker enumerates the history reachable from HEAD, newest first.
type CommitWalker interface {
	// Walk calls fn for each commit. Returning ErrStopWalk ends the walk
	// without error; any other error aborts it and is returned.
	Walk(ctx context.Context, fn func(Commit) error) error
}

// FirstParentDiffer compares a commit with its first parent only.
type FirstParentDiffer interface {
	// Changes returns the changed paths without computing patch text.
	Changes(ctx context.Context, c Commit) ([]FileDiff, error)
	// Patches returns the changed paths together with unified patch text.
	Patches(ctx context.Context, c Commit) ([]FileDiff, error)
}

// HistorySource is a repository that can be both walked and diffed.
// This abstraction allows for easier testing and alternative implementations.
type HistorySource interface {
	CommitWalker
	FirstParentDiffer
}

// Compile-time interface conformance check.
var _ HistorySource = (*Repository)(nil)
