package aggregation

import (
	"bytes"
	"unicode/utf8"

	"github.com/masmgr/gitstats-go/internal/git"
)

// ChangeVolumeEstimator approximates the average number of changed lines per
// commit. Root commits are not eligible and do not affect the average.
type ChangeVolumeEstimator struct {
	totalLines int
	eligible   int
}

// NewChangeVolumeEstimator creates an empty estimator.
func NewChangeVolumeEstimator() *ChangeVolumeEstimator {
	return &ChangeVolumeEstimator{}
}

// Add accumulates the changed lines of one commit's first-parent diffs and
// returns the commit's own line count. A root commit is ignored and yields 0.
//
// An eligible commit whose diffs were all filtered out still counts towards
// the average with zero lines.
func (e *ChangeVolumeEstimator) Add(commit git.Commit, diffs []git.FileDiff) int {
	if commit.IsRoot() {
		return 0
	}

	lines := 0
	for _, d := range diffs {
		if !d.HasPatch() {
			continue
		}
		lines += CountChangedLines(d.Patch)
	}

	e.totalLines += lines
	e.eligible++
	return lines
}

// TotalLines returns the changed lines summed over all eligible commits.
func (e *ChangeVolumeEstimator) TotalLines() int {
	return e.totalLines
}

// Eligible returns the number of commits with a parent that were added.
func (e *ChangeVolumeEstimator) Eligible() int {
	return e.eligible
}

// Average returns TotalLines / Eligible, or exactly 0 when no commit was
// eligible.
func (e *ChangeVolumeEstimator) Average() float64 {
	if e.eligible == 0 {
		return 0
	}
	return float64(e.totalLines) / float64(e.eligible)
}

var (
	addedHeader   = []byte("+++")
	removedHeader = []byte("---")
)

// CountChangedLines counts the lines of a unified patch that start with "+"
// or "-", excluding the "+++" and "---" file headers. Patch text that is not
// valid UTF-8 counts as zero.
func CountChangedLines(patch []byte) int {
	if len(patch) == 0 || !utf8.Valid(patch) {
		return 0
	}

	count := 0
	for _, line := range bytes.Split(patch, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '+':
			if !bytes.HasPrefix(line, addedHeader) {
				count++
			}
		case '-':
			if !bytes.HasPrefix(line, removedHeader) {
				count++
			}
		}
	}
	return count
}
