package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/masmgr/gitstats-go/internal/aggregation"
)

// Statistic names one of the history statistics.
type Statistic string

const (
	StatCommitFrequency          Statistic = "commit-frequency"
	StatCommitFrequencyByWeekday Statistic = "commit-frequency-by-weekday"
	StatCommitFrequencyByHour    Statistic = "commit-frequency-by-hour"
	StatContributorActivity      Statistic = "contributor-activity"
	StatAverageCommitSize        Statistic = "average-commit-size"
	StatFileChangeFrequency      Statistic = "file-change-frequency"
)

// AllStatistics lists every statistic in report order.
var AllStatistics = []Statistic{
	StatCommitFrequency,
	StatCommitFrequencyByWeekday,
	StatCommitFrequencyByHour,
	StatContributorActivity,
	StatAverageCommitSize,
	StatFileChangeFrequency,
}

var statisticAliases = map[string]Statistic{
	"analyze_commit_frequency":            StatCommitFrequency,
	"analyze_commit_frequency_by_weekday": StatCommitFrequencyByWeekday,
	"analyze_commit_frequency_by_hour":    StatCommitFrequencyByHour,
	"analyze_contributor_activity":        StatContributorActivity,
	"analyze_average_commit_size":         StatAverageCommitSize,
	"analyze_file_change_frequency":       StatFileChangeFrequency,
}

// ParseStatistic resolves a statistic name. Besides the canonical names it
// accepts underscore spellings and the analyze_* command names.
func ParseStatistic(name string) (Statistic, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if s, ok := statisticAliases[normalized]; ok {
		return s, nil
	}

	candidate := Statistic(strings.ReplaceAll(normalized, "_", "-"))
	for _, s := range AllStatistics {
		if s == candidate {
			return s, nil
		}
	}

	return "", fmt.Errorf("unknown statistic %q (valid: %s)", name, strings.Join(StatisticNames(), ", "))
}

// StatisticNames returns the canonical statistic names.
func StatisticNames() []string {
	names := make([]string, len(AllStatistics))
	for i, s := range AllStatistics {
		names[i] = string(s)
	}
	return names
}

// Title returns a human-readable heading for the statistic.
func (s Statistic) Title() string {
	switch s {
	case StatCommitFrequency:
		return "Commits by Day"
	case StatCommitFrequencyByWeekday:
		return "Commits by Weekday"
	case StatCommitFrequencyByHour:
		return "Commits by Hour (UTC)"
	case StatContributorActivity:
		return "Contributor Activity"
	case StatAverageCommitSize:
		return "Average Commit Size"
	case StatFileChangeFrequency:
		return "File Change Frequency"
	default:
		return string(s)
	}
}

// KeyLabel names the key column of a counting statistic.
func (s Statistic) KeyLabel() string {
	switch s {
	case StatCommitFrequency:
		return "Date"
	case StatCommitFrequencyByWeekday:
		return "Weekday"
	case StatCommitFrequencyByHour:
		return "Hour"
	case StatContributorActivity:
		return "Contributor"
	case StatFileChangeFrequency:
		return "Path"
	default:
		return "Key"
	}
}

// Ranked reports whether the statistic is presented by count rather than by
// its natural key order.
func (s Statistic) Ranked() bool {
	return s == StatContributorActivity || s == StatFileChangeFrequency
}

// Result is the value of one statistic: a count mapping for every statistic
// except average-commit-size, which carries a single average.
type Result struct {
	Statistic Statistic
	Counts    map[string]int
	Average   float64
}

// IsAverage reports whether the result is a single average instead of counts.
func (r Result) IsAverage() bool {
	return r.Statistic == StatAverageCommitSize
}

// Entries returns the counts in presentation order: weekdays Monday first,
// hours from "00", days ascending, contributors and paths by count
// descending.
func (r Result) Entries() []aggregation.Entry {
	switch {
	case r.IsAverage():
		return nil
	case r.Statistic == StatCommitFrequencyByWeekday:
		return aggregation.InKeyOrder(r.Counts, aggregation.WeekdayKeys)
	case r.Statistic == StatCommitFrequencyByHour:
		return aggregation.InKeyOrder(r.Counts, aggregation.HourKeys())
	case r.Statistic.Ranked():
		return aggregation.Ranked(r.Counts)
	default:
		return aggregation.ByKey(r.Counts)
	}
}

// MarshalJSON encodes the result as a flat mapping. The average is wrapped as
// {"average_commit_size": x}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsAverage() {
		return marshalUnescaped(map[string]float64{"average_commit_size": r.Average})
	}
	counts := r.Counts
	if counts == nil {
		counts = map[string]int{}
	}
	return marshalUnescaped(counts)
}

// marshalUnescaped encodes v without HTML escaping so contributor keys keep
// their angle brackets.
func marshalUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Outcome is the result or error of one statistic within a batch.
type Outcome struct {
	Statistic Statistic
	Result    Result
	Err       error
}
