package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// MarkdownStatsWriter writes statistics reports as Markdown.
type MarkdownStatsWriter struct{}

// Write outputs the statistics report as Markdown.
func (w *MarkdownStatsWriter) Write(report *StatsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Git History Statistics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Generated:** %s\n", report.GeneratedAt.Format(reportDateTimeLayout))

	for _, o := range report.Outcomes {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "## %s\n\n", o.Statistic.Title())

		if o.Err != nil {
			fmt.Fprintf(out, "> **Error:** %s\n", escapeMarkdown(o.Err.Error()))
			continue
		}

		if o.Result.IsAverage() {
			fmt.Fprintf(out, "**Average changed lines per commit:** %s\n", humanize.CommafWithDigits(o.Result.Average, 2))
			continue
		}

		entries := visibleEntries(o.Result, options.Top)
		if len(entries) == 0 {
			fmt.Fprintln(out, "_No commits._")
			continue
		}

		fmt.Fprintf(out, "| %s | Commits |\n", o.Statistic.KeyLabel())
		fmt.Fprintln(out, "|---|---|")
		for _, e := range entries {
			fmt.Fprintf(out, "| %s | %d |\n", escapeMarkdown(e.Key), e.Count)
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
