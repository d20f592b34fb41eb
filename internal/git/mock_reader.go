package git

import (
	"context"
	"errors"
)

// MockRepository is a test double for Repository.
// It allows tests to provide predefined history and diffs without needing a real Git repository.
type MockRepository struct {
	Commits []Commit
	Diffs   map[string][]FileDiff // keyed by commit SHA
	Error   error                 // returned by Walk
	DiffErr error                 // returned by Changes and Patches
}

// NewMockRepository creates a new MockRepository with the given history.
func NewMockRepository(commits []Commit, diffs map[string][]FileDiff) *MockRepository {
	return &MockRepository{
		Commits: commits,
		Diffs:   diffs,
	}
}

// Walk replays the predefined commits in order.
func (m *MockRepository) Walk(ctx context.Context, fn func(Commit) error) error {
	if m.Error != nil {
		return m.Error
	}
	for _, c := range m.Commits {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Changes returns the predefined diffs for c with patch text stripped.
func (m *MockRepository) Changes(ctx context.Context, c Commit) ([]FileDiff, error) {
	diffs, err := m.Patches(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]FileDiff, len(diffs))
	for i, d := range diffs {
		out[i] = FileDiff{OldPath: d.OldPath, NewPath: d.NewPath}
	}
	return out, nil
}

// Patches returns the predefined diffs for c.
func (m *MockRepository) Patches(_ context.Context, c Commit) ([]FileDiff, error) {
	if c.IsRoot() {
		return nil, &DiffComputationError{Commit: c.SHA, Err: errNoParent}
	}
	if m.DiffErr != nil {
		return nil, &DiffComputationError{Commit: c.SHA, Err: m.DiffErr}
	}
	return m.Diffs[c.SHA], nil
}

// Compile-time interface conformance check.
var _ HistorySource = (*MockRepository)(nil)
