package output

import (
	"io"
	"os"

	"github.com/masmgr/gitstats-go/internal/aggregation"
	"github.com/masmgr/gitstats-go/internal/analysis"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// visibleEntries returns the rows to print for a result. Top only trims the
// ranked statistics; calendar tables are always complete.
func visibleEntries(result analysis.Result, top int) []aggregation.Entry {
	entries := result.Entries()
	if result.Statistic.Ranked() {
		return limitTop(entries, top)
	}
	return entries
}

// limitResult trims the counts of a ranked result to its top entries.
func limitResult(result analysis.Result, top int) analysis.Result {
	if result.IsAverage() || !result.Statistic.Ranked() || top <= 0 || top >= len(result.Counts) {
		return result
	}
	limited := make(map[string]int, top)
	for _, e := range visibleEntries(result, top) {
		limited[e.Key] = e.Count
	}
	return analysis.Result{Statistic: result.Statistic, Counts: limited}
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
