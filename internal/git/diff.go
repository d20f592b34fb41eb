package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var errNoParent = errors.New("commit has no parent")

// Changes returns the files that differ between c and its first parent.
// No patch text is computed.
func (r *Repository) Changes(ctx context.Context, c Commit) ([]FileDiff, error) {
	changes, err := r.firstParentChanges(ctx, c)
	if err != nil {
		return nil, err
	}

	diffs := make([]FileDiff, 0, len(changes))
	for _, change := range changes {
		d := FileDiff{OldPath: change.From.Name, NewPath: change.To.Name}
		if path, ok := d.Path(); !ok || !r.matchesFilters(path) {
			continue
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// Patches returns the files that differ between c and its first parent,
// each with its unified patch text. Binary files carry no patch text.
func (r *Repository) Patches(ctx context.Context, c Commit) ([]FileDiff, error) {
	changes, err := r.firstParentChanges(ctx, c)
	if err != nil {
		return nil, err
	}

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, &DiffComputationError{Commit: c.SHA, Err: fmt.Errorf("compute patch: %w", err)}
	}

	filePatches := patch.FilePatches()
	diffs := make([]FileDiff, 0, len(filePatches))
	for _, fp := range filePatches {
		from, to := fp.Files()

		var d FileDiff
		if from != nil {
			d.OldPath = from.Path()
		}
		if to != nil {
			d.NewPath = to.Path()
		}

		path, ok := d.Path()
		if !ok || !r.matchesFilters(path) {
			continue
		}

		if !fp.IsBinary() {
			text, err := encodeFilePatch(fp)
			if err != nil {
				return nil, &DiffComputationError{Commit: c.SHA, Err: fmt.Errorf("encode patch for %s: %w", path, err)}
			}
			d.Patch = text
		}

		diffs = append(diffs, d)
	}
	return diffs, nil
}

// renameScore is the similarity percentage at which a delete and an add are
// paired into a rename, matching git's -M default.
const renameScore = 50

// firstParentChanges diffs the commit's tree against its first parent's tree.
// Renames are detected, so a moved file is one change keyed by its new path.
func (r *Repository) firstParentChanges(ctx context.Context, c Commit) (object.Changes, error) {
	parentSHA, ok := c.FirstParent()
	if !ok {
		return nil, &DiffComputationError{Commit: c.SHA, Err: errNoParent}
	}

	tree, err := r.treeOf(c.SHA)
	if err != nil {
		return nil, &DiffComputationError{Commit: c.SHA, Err: err}
	}
	parentTree, err := r.treeOf(parentSHA)
	if err != nil {
		return nil, &DiffComputationError{Commit: c.SHA, Err: fmt.Errorf("first parent: %w", err)}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, &object.DiffTreeOptions{
		DetectRenames: true,
		RenameScore:   renameScore,
	})
	if err != nil {
		return nil, &DiffComputationError{Commit: c.SHA, Err: fmt.Errorf("diff trees: %w", err)}
	}
	return changes, nil
}

func (r *Repository) treeOf(sha string) (*object.Tree, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", shortSHA(sha), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree of %s: %w", shortSHA(sha), err)
	}
	return tree, nil
}

// singleFilePatch adapts one FilePatch to the fdiff.Patch interface so the
// unified encoder can render it on its own.
type singleFilePatch struct {
	fp fdiff.FilePatch
}

func (p singleFilePatch) FilePatches() []fdiff.FilePatch {
	return []fdiff.FilePatch{p.fp}
}

func (p singleFilePatch) Message() string {
	return ""
}

func encodeFilePatch(fp fdiff.FilePatch) ([]byte, error) {
	var buf bytes.Buffer
	encoder := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines)
	if err := encoder.Encode(singleFilePatch{fp: fp}); err != nil {
		return nil, err
	}
	text := buf.Bytes()
	if text == nil {
		text = []byte{}
	}
	return text, nil
}
