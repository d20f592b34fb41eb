package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/gitstats-go/internal/analysis"
)

// Compile-time interface conformance checks.
var (
	_ StatsReportWriter = (*ConsoleStatsWriter)(nil)
	_ StatsReportWriter = (*JSONStatsWriter)(nil)
	_ StatsReportWriter = (*CSVStatsWriter)(nil)
	_ StatsReportWriter = (*MarkdownStatsWriter)(nil)
	_ StatsReportWriter = (*CIStatsWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// ParseFormat resolves a format name. "ndjson" is accepted for ci and "md"
// for markdown.
func ParseFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "console", "text":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "ci", "ndjson":
		return FormatCI, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: console, json, csv, markdown, ci)", name)
	}
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format OutputFormat
	// Top limits the rows of contributor and file statistics. 0 shows all.
	Top        int
	OutputPath string
}

// StatsReport holds the outcomes of one or more statistics for a repository.
type StatsReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Outcomes    []analysis.Outcome
}

// Failed returns the number of outcomes that carry an error.
func (r *StatsReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// StatsReportWriter writes statistics reports.
type StatsReportWriter interface {
	Write(report *StatsReport, options OutputOptions) error
}

// NewStatsReportWriter creates a report writer for the specified format.
func NewStatsReportWriter(format OutputFormat) StatsReportWriter {
	switch format {
	case FormatJSON:
		return &JSONStatsWriter{}
	case FormatCSV:
		return &CSVStatsWriter{}
	case FormatMarkdown:
		return &MarkdownStatsWriter{}
	case FormatCI:
		return &CIStatsWriter{}
	default:
		return &ConsoleStatsWriter{}
	}
}
