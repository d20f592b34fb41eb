package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONStatsWriter_Write(t *testing.T) {
	tmpFile := outputPath(t, "report.json")

	writer := &JSONStatsWriter{}
	if err := writer.Write(sampleReport(), OutputOptions{Format: FormatJSON, Top: 2, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw := readTestFile(t, tmpFile)
	if !strings.Contains(raw, `"Alice <a@x.com>": 4`) {
		t.Errorf("expected unescaped contributor keys in output:\n%s", raw)
	}

	var decoded struct {
		Repo        string                     `json:"repo"`
		GeneratedAt string                     `json:"generatedAt"`
		Results     map[string]json.RawMessage `json:"results"`
		Errors      map[string]string          `json:"errors"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Repo != "/test/repo" || decoded.GeneratedAt != "2024-03-01T12:00:00Z" {
		t.Errorf("header = %q, %q", decoded.Repo, decoded.GeneratedAt)
	}
	if len(decoded.Results) != 3 {
		t.Errorf("results has %d statistics, expected 3", len(decoded.Results))
	}
	if !strings.Contains(decoded.Errors["file-change-frequency"], "object not found") {
		t.Errorf("errors = %v", decoded.Errors)
	}

	var avg map[string]float64
	if err := json.Unmarshal(decoded.Results["average-commit-size"], &avg); err != nil || avg["average_commit_size"] != 2.5 {
		t.Errorf("average = %s", decoded.Results["average-commit-size"])
	}

	var contributors map[string]int
	if err := json.Unmarshal(decoded.Results["contributor-activity"], &contributors); err != nil {
		t.Fatalf("contributors: %v", err)
	}
	if len(contributors) != 2 {
		t.Errorf("contributors with top=2 = %v", contributors)
	}

	var weekdays map[string]int
	if err := json.Unmarshal(decoded.Results["commit-frequency-by-weekday"], &weekdays); err != nil {
		t.Fatalf("weekdays: %v", err)
	}
	if len(weekdays) != 7 {
		t.Errorf("weekdays = %v, expected all 7 keys", weekdays)
	}
}

func TestCSVStatsWriter_Write(t *testing.T) {
	tmpFile := outputPath(t, "report.csv")

	writer := &CSVStatsWriter{}
	if err := writer.Write(sampleReport(), OutputOptions{Format: FormatCSV, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(readTestFile(t, tmpFile))).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}

	// header + 7 weekdays + 3 contributors + 1 average + 1 error
	if len(records) != 13 {
		t.Fatalf("expected 13 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "Statistic,Key,Value" {
		t.Errorf("header = %v", records[0])
	}
	if strings.Join(records[1], ",") != "commit-frequency-by-weekday,Monday,3" {
		t.Errorf("first row = %v", records[1])
	}
	if strings.Join(records[8], ",") != "contributor-activity,Alice <a@x.com>,4" {
		t.Errorf("contributor row = %v", records[8])
	}
	if records[11][1] != "average_commit_size" || records[11][2] != "2.500000" {
		t.Errorf("average row = %v", records[11])
	}
	if records[12][1] != "error" {
		t.Errorf("error row = %v", records[12])
	}
}

func TestMarkdownStatsWriter_Write(t *testing.T) {
	tmpFile := outputPath(t, "report.md")

	writer := &MarkdownStatsWriter{}
	if err := writer.Write(sampleReport(), OutputOptions{Format: FormatMarkdown, Top: 1, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := readTestFile(t, tmpFile)
	for _, want := range []string{
		"# Git History Statistics",
		"**Repository:** /test/repo",
		"## Commits by Weekday",
		"| Monday | 3 |",
		"| Sunday | 2 |",
		"| Alice &lt;a@x.com&gt; | 4 |",
		"**Average changed lines per commit:** 2.5",
		"> **Error:**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bob") {
		t.Errorf("top=1 should hide the second contributor:\n%s", out)
	}
}

func TestConsoleStatsWriter_Write(t *testing.T) {
	tmpFile := outputPath(t, "report.txt")

	writer := &ConsoleStatsWriter{}
	if err := writer.Write(sampleReport(), OutputOptions{Format: FormatConsole, Top: 2, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := readTestFile(t, tmpFile)
	for _, want := range []string{
		"Git History Statistics",
		"Repository: /test/repo",
		"Commits by Weekday",
		"Contributor Activity",
		"Alice <a@x.com>",
		"... 1 more",
		"2.5 changed lines per commit",
		"error: diff computation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Carol") {
		t.Errorf("top=2 should hide the third contributor:\n%s", out)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		count, max int
		width      int
	}{
		{count: 0, max: 10, width: 0},
		{count: 10, max: 10, width: maxBarWidth},
		{count: 5, max: 10, width: maxBarWidth / 2},
		{count: 1, max: 1000, width: 1},
	}

	for _, tt := range tests {
		if got := len(bar(tt.count, tt.max)); got != tt.width {
			t.Errorf("bar(%d, %d) width = %d, expected %d", tt.count, tt.max, got, tt.width)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Pipe", input: "a|b", expected: "a\\|b"},
		{name: "Asterisk", input: "a*b", expected: "a\\*b"},
		{name: "Underscore", input: "a_b", expected: "a\\_b"},
		{name: "Backtick", input: "a`b", expected: "a\\`b"},
		{name: "Angle brackets", input: "Bob <b@x.com>", expected: "Bob &lt;b@x.com&gt;"},
		{name: "No specials", input: "plain text", expected: "plain text"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdown(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
