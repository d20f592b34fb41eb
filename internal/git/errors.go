package git

import (
	"errors"
	"fmt"
)

// ErrStopWalk may be returned from a Walk callback to end the walk early.
var ErrStopWalk = errors.New("stop walk")

// RepositoryAccessError reports that a path is not a readable repository or
// that its history could not be opened.
type RepositoryAccessError struct {
	Path string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("repository access %q: %v", e.Path, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

// DiffComputationError reports that a commit could not be compared to its
// first parent.
type DiffComputationError struct {
	Commit string
	Err    error
}

func (e *DiffComputationError) Error() string {
	return fmt.Sprintf("diff computation for commit %s: %v", shortSHA(e.Commit), e.Err)
}

func (e *DiffComputationError) Unwrap() error {
	return e.Err
}

// IsRepositoryAccess reports whether err is or wraps a RepositoryAccessError.
func IsRepositoryAccess(err error) bool {
	var target *RepositoryAccessError
	return errors.As(err, &target)
}

// IsDiffComputation reports whether err is or wraps a DiffComputationError.
func IsDiffComputation(err error) bool {
	var target *DiffComputationError
	return errors.As(err, &target)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
