package models

import "sort"

// WeightLog is one body-weight entry. The collection invariant is at most
// one entry per calendar date, kept sorted ascending by date.
type WeightLog struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	WeightKg float64 `json:"weight"`
}

// UpsertWeight inserts entry into history, replacing any existing entry for
// the same date, and returns the collection sorted ascending by date. The
// input slice is not modified.
func UpsertWeight(history []WeightLog, entry WeightLog) []WeightLog {
	out := make([]WeightLog, 0, len(history)+1)
	replaced := false
	for _, w := range history {
		if w.Date == entry.Date {
			out = append(out, entry)
			replaced = true
			continue
		}
		out = append(out, w)
	}
	if !replaced {
		out = append(out, entry)
	}
	SortWeights(out)
	return out
}

// SortWeights orders history ascending by date in place.
func SortWeights(history []WeightLog) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
}

// LatestWeightDate returns the chronologically last date in history, or ""
// for an empty collection.
func LatestWeightDate(history []WeightLog) string {
	last := ""
	for _, w := range history {
		if w.Date > last {
			last = w.Date
		}
	}
	return last
}
