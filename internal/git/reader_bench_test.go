package git

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/gitstats-go/internal/git/gittest"
)

func createBenchRepo(tb testing.TB, commits, files, vendorLines int) string {
	tb.Helper()

	fixture := gittest.NewRepo(tb)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sig := func(when time.Time) gittest.Signature {
		return gittest.Sig("Bench", "bench@example.com", when)
	}

	// The root commit is never diffed.
	fixture.Write("src/file000.txt", "initial\n")
	if vendorLines > 0 {
		fixture.Write("vendor/big.txt", "initial\n")
	}
	fixture.Commit("initial", sig(base))

	for i := 0; i < commits; i++ {
		for f := 0; f < files; f++ {
			rel := fmt.Sprintf("src/file%03d.txt", f)
			fixture.Write(rel, fmt.Sprintf("commit=%d file=%d\nline\n", i, f))
		}

		if vendorLines > 0 {
			var sb strings.Builder
			sb.Grow(vendorLines * 16)
			for l := 0; l < vendorLines; l++ {
				fmt.Fprintf(&sb, "x%d\n", i)
			}
			fixture.Write("vendor/big.txt", sb.String())
		}

		fixture.Commit(fmt.Sprintf("commit %d", i), sig(base.Add(time.Duration(i+1)*time.Hour)))
	}

	return fixture.Dir
}

func benchmarkDiffs(b *testing.B, repoDir string, opts ReadOptions, withPatches bool) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		repo, err := Open(repoDir, opts)
		if err != nil {
			b.Fatalf("Open: %v", err)
		}

		files := 0
		err = repo.Walk(context.Background(), func(c Commit) error {
			if c.IsRoot() {
				return nil
			}
			var diffs []FileDiff
			var err error
			if withPatches {
				diffs, err = repo.Patches(context.Background(), c)
			} else {
				diffs, err = repo.Changes(context.Background(), c)
			}
			files += len(diffs)
			return err
		})
		if err != nil {
			b.Fatalf("Walk: %v", err)
		}
		if files == 0 {
			b.Fatalf("unexpected empty diffs")
		}
	}
}

func BenchmarkRepository_Walk(b *testing.B) {
	repoDir := createBenchRepo(b, 200, 1, 0)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		repo, err := Open(repoDir, ReadOptions{})
		if err != nil {
			b.Fatalf("Open: %v", err)
		}
		commits, err := Collect(context.Background(), repo)
		if err != nil {
			b.Fatalf("Collect: %v", err)
		}
		if len(commits) != 201 {
			b.Fatalf("commits = %d, expected 201", len(commits))
		}
	}
}

func BenchmarkRepository_Patches(b *testing.B) {
	benchmarkDiffs(b, createBenchRepo(b, 80, 25, 0), ReadOptions{}, true)
}

func BenchmarkRepository_Changes(b *testing.B) {
	benchmarkDiffs(b, createBenchRepo(b, 80, 25, 0), ReadOptions{}, false)
}

func BenchmarkRepository_Patches_ExcludeLargePath(b *testing.B) {
	benchmarkDiffs(b, createBenchRepo(b, 80, 5, 4000), ReadOptions{Exclude: []string{"vendor/**"}}, true)
}

func BenchmarkRepository_Patches_IncludeLargePath(b *testing.B) {
	benchmarkDiffs(b, createBenchRepo(b, 80, 5, 4000), ReadOptions{}, true)
}
