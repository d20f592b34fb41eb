package aggregation

import (
	"fmt"
	"time"

	"github.com/masmgr/gitstats-go/internal/git"
)

// BucketFunc derives a bucket key from a commit timestamp.
type BucketFunc func(time.Time) string

// WeekdayKeys lists the weekday buckets in report order.
var WeekdayKeys = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HourKeys returns the 24 hour buckets "00".."23".
func HourKeys() []string {
	keys := make([]string, 24)
	for h := range keys {
		keys[h] = fmt.Sprintf("%02d", h)
	}
	return keys
}

// DayBucket keys a timestamp by its UTC calendar date (YYYY-MM-DD).
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekdayBucket keys a timestamp by its UTC weekday name.
func WeekdayBucket(t time.Time) string {
	return t.UTC().Weekday().String()
}

// HourBucket keys a timestamp by its zero-padded UTC hour.
func HourBucket(t time.Time) string {
	return fmt.Sprintf("%02d", t.UTC().Hour())
}

// TemporalAggregator counts commits per time bucket.
//
// Seed keys are present in the result even when no commit falls into them.
// Every commit added increments exactly one bucket, so the counts always sum
// to Total().
type TemporalAggregator struct {
	bucket BucketFunc
	counts map[string]int
	total  int
}

// NewTemporalAggregator creates an aggregator over bucket, pre-seeded with
// seedKeys at zero.
func NewTemporalAggregator(bucket BucketFunc, seedKeys []string) *TemporalAggregator {
	counts := make(map[string]int, len(seedKeys))
	for _, key := range seedKeys {
		counts[key] = 0
	}
	return &TemporalAggregator{bucket: bucket, counts: counts}
}

// NewDayAggregator creates an aggregator keyed by UTC date.
func NewDayAggregator() *TemporalAggregator {
	return NewTemporalAggregator(DayBucket, nil)
}

// NewWeekdayAggregator creates an aggregator keyed by weekday name.
func NewWeekdayAggregator() *TemporalAggregator {
	return NewTemporalAggregator(WeekdayBucket, WeekdayKeys)
}

// NewHourAggregator creates an aggregator keyed by hour of day.
func NewHourAggregator() *TemporalAggregator {
	return NewTemporalAggregator(HourBucket, HourKeys())
}

// Add counts one commit.
func (a *TemporalAggregator) Add(commit git.Commit) {
	a.counts[a.bucket(commit.When)]++
	a.total++
}

// Total returns the number of commits added.
func (a *TemporalAggregator) Total() int {
	return a.total
}

// Counts returns a copy of the bucket counts.
func (a *TemporalAggregator) Counts() map[string]int {
	return copyCounts(a.counts)
}

// ByDay counts commits per UTC calendar date.
func ByDay(commits []git.Commit) map[string]int {
	return aggregate(NewDayAggregator(), commits)
}

// ByWeekday counts commits per weekday, always returning all seven keys.
func ByWeekday(commits []git.Commit) map[string]int {
	return aggregate(NewWeekdayAggregator(), commits)
}

// ByHour counts commits per UTC hour, always returning all 24 keys.
func ByHour(commits []git.Commit) map[string]int {
	return aggregate(NewHourAggregator(), commits)
}

func aggregate(a *TemporalAggregator, commits []git.Commit) map[string]int {
	for _, c := range commits {
		a.Add(c)
	}
	return a.Counts()
}

func copyCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
