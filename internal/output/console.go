package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/masmgr/gitstats-go/internal/aggregation"
	"github.com/masmgr/gitstats-go/internal/analysis"
)

const maxBarWidth = 40

// ConsoleStatsWriter writes statistics reports to the console.
type ConsoleStatsWriter struct{}

// Write outputs the statistics report as aligned tables.
func (w *ConsoleStatsWriter) Write(report *StatsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title := color.New(color.FgGreen)
	heading := color.New(color.FgCyan, color.Bold)
	failure := color.New(color.FgRed)

	title.Fprintln(out, "Git History Statistics")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Generated: %s\n", report.GeneratedAt.Format(reportDateTimeLayout))

	for _, o := range report.Outcomes {
		fmt.Fprintln(out)
		heading.Fprintln(out, o.Statistic.Title())

		if o.Err != nil {
			failure.Fprintf(out, "  error: %v\n", o.Err)
			continue
		}

		if o.Result.IsAverage() {
			fmt.Fprintf(out, "  %s changed lines per commit\n", humanize.CommafWithDigits(o.Result.Average, 2))
			continue
		}

		writeConsoleTable(out, o.Result, options.Top)
	}

	return nil
}

func writeConsoleTable(out io.Writer, result analysis.Result, top int) {
	entries := visibleEntries(result, top)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (no commits)")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if result.Statistic.Ranked() {
		fmt.Fprintf(tw, "#\t%s\tCommits\n", result.Statistic.KeyLabel())
		for i, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, e.Key, humanize.Comma(int64(e.Count)))
		}
	} else {
		maxCount := maxEntryCount(entries)
		fmt.Fprintf(tw, "%s\tCommits\t\n", result.Statistic.KeyLabel())
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, humanize.Comma(int64(e.Count)), bar(e.Count, maxCount))
		}
	}

	tw.Flush()

	if result.Statistic.Ranked() && len(entries) < len(result.Counts) {
		fmt.Fprintf(out, "  ... %d more\n", len(result.Counts)-len(entries))
	}
}

func maxEntryCount(entries []aggregation.Entry) int {
	maxCount := 0
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	return maxCount
}

func bar(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return ""
	}
	width := count * maxBarWidth / maxCount
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}
