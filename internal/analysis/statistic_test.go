package analysis

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseStatistic(t *testing.T) {
	tests := []struct {
		input    string
		expected Statistic
		wantErr  bool
	}{
		{input: "commit-frequency", expected: StatCommitFrequency},
		{input: "commit_frequency_by_hour", expected: StatCommitFrequencyByHour},
		{input: " Contributor-Activity ", expected: StatContributorActivity},
		{input: "analyze_commit_frequency_by_weekday", expected: StatCommitFrequencyByWeekday},
		{input: "analyze_average_commit_size", expected: StatAverageCommitSize},
		{input: "analyze_file_change_frequency", expected: StatFileChangeFrequency},
		{input: "lines-of-code", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatistic(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatistic(%q) = %q, expected error", tt.input, got)
				}
				if !strings.Contains(err.Error(), "commit-frequency") {
					t.Errorf("error should list valid names: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatistic(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseStatistic(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{
			name:     "Counts",
			result:   Result{Statistic: StatContributorActivity, Counts: map[string]int{"Bob <b@x.com>": 1, "Alice <a@x.com>": 2}},
			expected: `{"Alice <a@x.com>":2,"Bob <b@x.com>":1}`,
		},
		{
			name:     "Empty counts",
			result:   Result{Statistic: StatFileChangeFrequency},
			expected: `{}`,
		},
		{
			name:     "Average",
			result:   Result{Statistic: StatAverageCommitSize, Average: 2.5},
			expected: `{"average_commit_size":2.5}`,
		},
		{
			name:     "Zero average",
			result:   Result{Statistic: StatAverageCommitSize},
			expected: `{"average_commit_size":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			// Go's encoder HTML-escapes angle brackets.
			got := strings.NewReplacer(`\u003c`, "<", `\u003e`, ">").Replace(string(data))
			if got != tt.expected {
				t.Errorf("MarshalJSON() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestResult_Entries(t *testing.T) {
	t.Run("Weekday order", func(t *testing.T) {
		r := Result{Statistic: StatCommitFrequencyByWeekday, Counts: map[string]int{"Sunday": 4, "Monday": 1}}
		entries := r.Entries()
		if len(entries) != 7 || entries[0].Key != "Monday" || entries[6].Key != "Sunday" || entries[6].Count != 4 {
			t.Errorf("Entries() = %v", entries)
		}
	})

	t.Run("Hour order", func(t *testing.T) {
		r := Result{Statistic: StatCommitFrequencyByHour, Counts: map[string]int{"23": 1, "00": 2}}
		entries := r.Entries()
		if len(entries) != 24 || entries[0].Key != "00" || entries[23].Key != "23" {
			t.Errorf("Entries() = %v", entries)
		}
	})

	t.Run("Days ascending", func(t *testing.T) {
		r := Result{Statistic: StatCommitFrequency, Counts: map[string]int{"2024-01-02": 9, "2024-01-01": 1}}
		entries := r.Entries()
		if entries[0].Key != "2024-01-01" || entries[1].Key != "2024-01-02" {
			t.Errorf("Entries() = %v", entries)
		}
	})

	t.Run("Paths by count", func(t *testing.T) {
		r := Result{Statistic: StatFileChangeFrequency, Counts: map[string]int{"a.go": 1, "b.go": 5}}
		entries := r.Entries()
		if entries[0].Key != "b.go" || entries[1].Key != "a.go" {
			t.Errorf("Entries() = %v", entries)
		}
	})

	t.Run("Average has no entries", func(t *testing.T) {
		r := Result{Statistic: StatAverageCommitSize, Average: 3}
		if entries := r.Entries(); entries != nil {
			t.Errorf("Entries() = %v, expected nil", entries)
		}
	})
}
