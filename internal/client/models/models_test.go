package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEnums_AcceptKnownValues(t *testing.T) {
	g, err := ParseGender("FEMALE")
	require.NoError(t, err)
	require.Equal(t, GenderFemale, g)

	a, err := ParseActivityLevel("MODERATELY_ACTIVE")
	require.NoError(t, err)
	require.Equal(t, ActivityModeratelyActive, a)

	goal, err := ParseGoalType("LOSE_WEIGHT")
	require.NoError(t, err)
	require.Equal(t, GoalLoseWeight, goal)

	m, err := ParseMealType("SNACK")
	require.NoError(t, err)
	require.Equal(t, MealSnack, m)
}

func TestParseEnums_RejectUnknownValues(t *testing.T) {
	for _, fn := range []func(string) error{
		func(s string) error { _, err := ParseGender(s); return err },
		func(s string) error { _, err := ParseActivityLevel(s); return err },
		func(s string) error { _, err := ParseGoalType(s); return err },
		func(s string) error { _, err := ParseMealType(s); return err },
	} {
		err := fn("BOGUS")
		require.ErrorIs(t, err, ErrUnknownEnumValue)
	}
}

func TestMaintenanceCalories_FallsBackToTarget(t *testing.T) {
	p := Profile{TargetCals: 1800}
	require.Equal(t, 1800, p.MaintenanceCalories())

	p.TDEE = 2200
	require.Equal(t, 2200, p.MaintenanceCalories())
}

func TestSortMealsForStorage_CompositeKey(t *testing.T) {
	logs := []MealLog{
		{ID: "3", Date: "2024-01-02", Time: "08:00"},
		{ID: "1", Date: "2024-01-01", Time: "20:00"},
		{ID: "2", Date: "2024-01-01", Time: "07:30"},
	}
	SortMealsForStorage(logs)

	require.Equal(t, []string{"2", "1", "3"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})
	for i := 1; i < len(logs); i++ {
		require.LessOrEqual(t, logs[i-1].StorageKey(), logs[i].StorageKey())
	}
}

func TestSortMealsForDisplay_DateDescTimeAsc(t *testing.T) {
	logs := []MealLog{
		{ID: "a", Date: "2024-01-01", Time: "20:00"},
		{ID: "b", Date: "2024-01-02", Time: "12:00"},
		{ID: "c", Date: "2024-01-02", Time: "08:00"},
	}
	SortMealsForDisplay(logs)
	require.Equal(t, []string{"c", "b", "a"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})
}

func TestDeleteMealByID(t *testing.T) {
	logs := []MealLog{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	got := DeleteMealByID(logs, "2")
	require.Len(t, got, 2)
	for _, l := range got {
		require.NotEqual(t, "2", l.ID)
	}

	require.Len(t, DeleteMealByID(logs, "missing"), 3)
}

func TestUpsertWeight_ReplacesExistingDate(t *testing.T) {
	history := []WeightLog{
		{Date: "2024-01-01", WeightKg: 61},
		{Date: "2024-01-03", WeightKg: 60.5},
	}

	got := UpsertWeight(history, WeightLog{Date: "2024-01-03", WeightKg: 60})
	require.Len(t, got, 2)
	require.Equal(t, 60.0, got[1].WeightKg)
	require.Equal(t, "2024-01-03", got[1].Date)
}

func TestUpsertWeight_InsertsNewDateSorted(t *testing.T) {
	history := []WeightLog{
		{Date: "2024-01-01", WeightKg: 61},
		{Date: "2024-01-03", WeightKg: 60.5},
	}

	got := UpsertWeight(history, WeightLog{Date: "2024-01-02", WeightKg: 60.8})
	require.Len(t, got, 3)
	require.Equal(t, "2024-01-01", got[0].Date)
	require.Equal(t, "2024-01-02", got[1].Date)
	require.Equal(t, "2024-01-03", got[2].Date)
}

func TestLatestWeightDate(t *testing.T) {
	require.Equal(t, "", LatestWeightDate(nil))
	history := []WeightLog{{Date: "2024-01-03"}, {Date: "2024-01-01"}}
	require.Equal(t, "2024-01-03", LatestWeightDate(history))
}

func TestCaloriesByDate(t *testing.T) {
	logs := []MealLog{
		{Date: "2024-01-01", Calories: 400},
		{Date: "2024-01-01", Calories: 600},
		{Date: "2024-01-02", Calories: 500},
	}
	totals := CaloriesByDate(logs)
	require.Equal(t, 1000, totals["2024-01-01"])
	require.Equal(t, 500, totals["2024-01-02"])
}
