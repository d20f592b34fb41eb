package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIStatsWriter writes statistics reports as NDJSON (one JSON object per line) for CI pipelines.
type CIStatsWriter struct{}

// CISummary is the first line of CI output.
type CISummary struct {
	Type       string `json:"type"`
	Repo       string `json:"repo"`
	Statistics int    `json:"statistics"`
	Failed     int    `json:"failed"`
}

// CIEntry is one key of a counting statistic.
type CIEntry struct {
	Type      string `json:"type"`
	Statistic string `json:"statistic"`
	Key       string `json:"key"`
	Count     int    `json:"count"`
}

// CIAverage is the value of an averaging statistic.
type CIAverage struct {
	Type      string  `json:"type"`
	Statistic string  `json:"statistic"`
	Value     float64 `json:"value"`
}

// CIError reports a failed statistic.
type CIError struct {
	Type      string `json:"type"`
	Statistic string `json:"statistic"`
	Message   string `json:"message"`
}

// Write outputs the statistics report as NDJSON.
func (w *CIStatsWriter) Write(report *StatsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write summary line
	summary := CISummary{
		Type:       "summary",
		Repo:       report.RepoPath,
		Statistics: len(report.Outcomes),
		Failed:     report.Failed(),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, o := range report.Outcomes {
		stat := string(o.Statistic)

		switch {
		case o.Err != nil:
			if err := writeNDJSONLine(out, CIError{Type: "error", Statistic: stat, Message: o.Err.Error()}); err != nil {
				return err
			}
		case o.Result.IsAverage():
			if err := writeNDJSONLine(out, CIAverage{Type: "average", Statistic: stat, Value: o.Result.Average}); err != nil {
				return err
			}
		default:
			for _, e := range visibleEntries(o.Result, options.Top) {
				entry := CIEntry{Type: "count", Statistic: stat, Key: e.Key, Count: e.Count}
				if err := writeNDJSONLine(out, entry); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
