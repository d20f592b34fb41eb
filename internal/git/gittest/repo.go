// Package gittest builds throwaway Git repositories for tests.
//
// Repositories are created with go-git under tb.TempDir(), so no git binary
// is needed. Every commit takes an explicit signature and time, which makes
// the resulting history fully deterministic.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature identifies the author and committer of a fixture commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Sig is shorthand for building a Signature.
func Sig(name, email string, when time.Time) Signature {
	return Signature{Name: name, Email: email, When: when}
}

// Repo is a fixture repository with a worktree.
type Repo struct {
	Dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	tb   testing.TB
}

// NewRepo initializes an empty repository in a temporary directory.
func NewRepo(tb testing.TB) *Repo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &Repo{Dir: dir, repo: repo, wt: wt, tb: tb}
}

// Write creates or overwrites a file and stages it.
func (r *Repo) Write(rel, content string) {
	r.tb.Helper()
	r.WriteBytes(rel, []byte(content))
}

// WriteBytes creates or overwrites a file with raw content and stages it.
func (r *Repo) WriteBytes(rel string, data []byte) {
	r.tb.Helper()

	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add(%s): %v", rel, err)
	}
}

// Remove deletes a file from the worktree and the index.
func (r *Repo) Remove(rel string) {
	r.tb.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.tb.Fatalf("Remove(%s): %v", rel, err)
	}
}

// Commit records the staged state on top of HEAD and returns the new SHA.
func (r *Repo) Commit(msg string, sig Signature) string {
	r.tb.Helper()
	return r.CommitWithParents(msg, sig)
}

// CommitWithParents records the staged state with an explicit parent list.
// The first parent is the one diffs are computed against. With no parents
// given, HEAD is used (or none for the first commit).
func (r *Repo) CommitWithParents(msg string, sig Signature, parents ...string) string {
	r.tb.Helper()

	objSig := &object.Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
	opts := &gogit.CommitOptions{
		Author:            objSig,
		Committer:         objSig,
		AllowEmptyCommits: true,
	}
	for _, p := range parents {
		opts.Parents = append(opts.Parents, plumbing.NewHash(p))
	}

	hash, err := r.wt.Commit(msg, opts)
	if err != nil {
		r.tb.Fatalf("Commit(%q): %v", msg, err)
	}
	return hash.String()
}

// Checkout switches the worktree to branch, creating it from HEAD if asked.
func (r *Repo) Checkout(branch string, create bool) {
	r.tb.Helper()

	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.tb.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// Head returns the SHA HEAD points to.
func (r *Repo) Head() string {
	r.tb.Helper()

	ref, err := r.repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	return ref.Hash().String()
}

// HeadBranch returns the short name of the branch HEAD points to.
func (r *Repo) HeadBranch() string {
	r.tb.Helper()

	ref, err := r.repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	return ref.Name().Short()
}
