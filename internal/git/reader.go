package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Repository reads commit history and first-parent diffs from a Git repository.
type Repository struct {
	repo *git.Repository
	path string
	opts ReadOptions
}

// Open opens the repository at path. It fails with *RepositoryAccessError if
// the path is not a Git repository.
func Open(path string, opts ReadOptions) (*Repository, error) {
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid path pattern %q", pattern)
		}
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, &RepositoryAccessError{Path: path, Err: err}
	}
	return &Repository{repo: repo, path: path, opts: opts}, nil
}

// Path returns the filesystem path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// Walk calls fn for every commit reachable from HEAD, newest first by
// committer time. Each call starts a fresh traversal, so a Repository can be
// walked any number of times.
func (r *Repository) Walk(ctx context.Context, fn func(Commit) error) error {
	ref, err := r.repo.Head()
	if err != nil {
		return &RepositoryAccessError{Path: r.path, Err: fmt.Errorf("resolve HEAD: %w", err)}
	}

	cIter, err := r.repo.Log(&git.LogOptions{
		From:  ref.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return &RepositoryAccessError{Path: r.path, Err: fmt.Errorf("open history: %w", err)}
	}
	defer cIter.Close()

	// Errors from fn are passed through untouched; only iteration failures
	// are reported as access errors.
	var stopErr error
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			stopErr = err
			return storer.ErrStop
		}
		if err := fn(toCommit(c)); err != nil {
			stopErr = err
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return &RepositoryAccessError{Path: r.path, Err: fmt.Errorf("read history: %w", err)}
	}
	if stopErr != nil && !errors.Is(stopErr, ErrStopWalk) {
		return stopErr
	}
	return nil
}

// Collect walks the whole history and returns it as a slice.
func Collect(ctx context.Context, w CommitWalker) ([]Commit, error) {
	var commits []Commit
	err := w.Walk(ctx, func(c Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func toCommit(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}

	// Extract first line of commit message
	message := c.Message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}

	return Commit{
		SHA:     c.Hash.String(),
		When:    c.Committer.When.UTC(),
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Parents: parents,
		Message: message,
	}
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *Repository) matchesFilters(path string) bool {
	return MatchesFilters(path, r.opts.Include, r.opts.Exclude)
}

// MatchesFilters reports whether path passes the exclude patterns and, when
// any include patterns are given, matches at least one of them.
func MatchesFilters(path string, include, exclude []string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(include) == 0 {
		return true
	}

	for _, pattern := range include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}
