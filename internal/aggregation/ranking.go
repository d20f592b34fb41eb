package aggregation

import "sort"

// Entry is one key/count pair of a counting statistic.
type Entry struct {
	Key   string
	Count int
}

// Ranked orders counts by count descending, then key ascending.
func Ranked(counts map[string]int) []Entry {
	entries := toEntries(counts)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// ByKey orders counts by key ascending.
func ByKey(counts map[string]int) []Entry {
	entries := toEntries(counts)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// InKeyOrder returns the entries for keys in the given order. Keys missing
// from counts are reported as zero; keys not listed are dropped.
func InKeyOrder(counts map[string]int, keys []string) []Entry {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Count: counts[k]})
	}
	return entries
}

// Sum returns the total of all counts.
func Sum(counts map[string]int) int {
	total := 0
	for _, v := range counts {
		total += v
	}
	return total
}

func toEntries(counts map[string]int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, Entry{Key: k, Count: v})
	}
	return entries
}
