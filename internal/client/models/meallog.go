package models

import (
	"fmt"
	"sort"
)

// MealType is a closed enumeration of meal slots.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

// ParseMealType validates s against the MealType enumeration.
func ParseMealType(s string) (MealType, error) {
	switch m := MealType(s); m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return m, nil
	}
	return "", fmt.Errorf("meal type %q: %w", s, ErrUnknownEnumValue)
}

// MealLog is one logged meal.
//
// ImageRef is a session-local reference to the analyzed photo. It is never
// synced to the backing store to bound payload size, so it survives only for
// the lifetime of the session that created it.
type MealLog struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Time        string   `json:"time"` // HH:MM
	Type        MealType `json:"type"`
	Description string   `json:"description"`
	Calories    int      `json:"calories"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs"`
	Fat         int      `json:"fat"`
	ImageRef    string   `json:"imageUrl,omitempty"`
}

// StorageKey is the composite sort key for stored rows. Dates and times are
// zero-padded, so plain string concatenation orders chronologically.
func (m MealLog) StorageKey() string {
	return m.Date + m.Time
}

// SortMealsForStorage orders logs ascending by (date, time) in place,
// the order rows are written to the backing table.
func SortMealsForStorage(logs []MealLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].StorageKey() < logs[j].StorageKey()
	})
}

// SortMealsForDisplay orders logs by date descending, then time ascending
// within a date, in place. This is the dashboard presentation order.
func SortMealsForDisplay(logs []MealLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].Date != logs[j].Date {
			return logs[i].Date > logs[j].Date
		}
		return logs[i].Time < logs[j].Time
	})
}

// ReverseMeals reverses the slice in place. Storage order is chronological
// ascending; the loaded view is most-recent-first.
func ReverseMeals(logs []MealLog) {
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
}

// DeleteMealByID returns logs without the entry carrying id. The slice is
// returned unchanged when no entry matches.
func DeleteMealByID(logs []MealLog, id string) []MealLog {
	out := make([]MealLog, 0, len(logs))
	for _, l := range logs {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// CaloriesByDate sums calories per calendar day.
func CaloriesByDate(logs []MealLog) map[string]int {
	totals := make(map[string]int)
	for _, l := range logs {
		totals[l.Date] += l.Calories
	}
	return totals
}
