package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/masmgr/gitstats-go/internal/analysis"
)

// JSONStatsWriter writes statistics reports as JSON.
type JSONStatsWriter struct{}

// JSONStatsReport is the JSON output structure for a statistics report.
type JSONStatsReport struct {
	RepoPath    string                     `json:"repo"`
	GeneratedAt string                     `json:"generatedAt"`
	Results     map[string]analysis.Result `json:"results"`
	Errors      map[string]string          `json:"errors,omitempty"`
}

// Write outputs the statistics report as JSON.
func (w *JSONStatsWriter) Write(report *StatsReport, options OutputOptions) error {
	jsonReport := JSONStatsReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Results:     make(map[string]analysis.Result),
	}

	for _, o := range report.Outcomes {
		if o.Err != nil {
			if jsonReport.Errors == nil {
				jsonReport.Errors = make(map[string]string)
			}
			jsonReport.Errors[string(o.Statistic)] = o.Err.Error()
			continue
		}
		jsonReport.Results[string(o.Statistic)] = limitResult(o.Result, options.Top)
	}

	return WriteJSON(jsonReport, options.OutputPath)
}

// WriteJSON writes data as indented JSON to outputPath, or stdout when empty.
func WriteJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
