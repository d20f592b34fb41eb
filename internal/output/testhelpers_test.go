package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masmgr/gitstats-go/internal/analysis"
)

var testGeneratedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// sampleReport returns a report with one outcome of every kind: calendar
// counts, ranked counts, an average and a failure.
func sampleReport() *StatsReport {
	return &StatsReport{
		RepoPath:    "/test/repo",
		GeneratedAt: testGeneratedAt,
		Outcomes: []analysis.Outcome{
			{
				Statistic: analysis.StatCommitFrequencyByWeekday,
				Result: analysis.Result{
					Statistic: analysis.StatCommitFrequencyByWeekday,
					Counts: map[string]int{
						"Monday": 3, "Tuesday": 0, "Wednesday": 1, "Thursday": 0,
						"Friday": 0, "Saturday": 0, "Sunday": 2,
					},
				},
			},
			{
				Statistic: analysis.StatContributorActivity,
				Result: analysis.Result{
					Statistic: analysis.StatContributorActivity,
					Counts:    map[string]int{"Alice <a@x.com>": 4, "Bob <b@x.com>": 2, "Carol <c@x.com>": 1},
				},
			},
			{
				Statistic: analysis.StatAverageCommitSize,
				Result:    analysis.Result{Statistic: analysis.StatAverageCommitSize, Average: 2.5},
			},
			{
				Statistic: analysis.StatFileChangeFrequency,
				Err:       errors.New("diff computation for commit 01234567: object not found"),
			},
		},
	}
}

func outputPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}
