package output

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVStatsWriter writes statistics reports as CSV with one row per key.
type CSVStatsWriter struct{}

// Write outputs the statistics report as CSV. Failed statistics produce a
// single row with the key "error" and the message as value.
func (w *CSVStatsWriter) Write(report *StatsReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	if err := writer.Write([]string{"Statistic", "Key", "Value"}); err != nil {
		return err
	}

	// Write data
	for _, o := range report.Outcomes {
		stat := string(o.Statistic)

		switch {
		case o.Err != nil:
			if err := writer.Write([]string{stat, "error", o.Err.Error()}); err != nil {
				return err
			}
		case o.Result.IsAverage():
			row := []string{stat, "average_commit_size", strconv.FormatFloat(o.Result.Average, 'f', 6, 64)}
			if err := writer.Write(row); err != nil {
				return err
			}
		default:
			for _, e := range visibleEntries(o.Result, options.Top) {
				if err := writer.Write([]string{stat, e.Key, strconv.Itoa(e.Count)}); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
