package cli

import (
	"context"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/common"
)

// Today prints the daily dashboard: today's meals, intake versus targets,
// the remaining budget and the calorie deficits.
func (a *App) Today(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	today := a.clock.Today()
	fmt.Println("Dashboard for", today)

	count := 0
	for _, m := range a.session.Meals() {
		if m.Date != today {
			continue
		}
		fmt.Printf("  %s  %-9s %-30s %4d kcal\n", m.Time, m.Type, m.Description, m.Calories)
		count++
	}
	if count == 0 {
		fmt.Println("  no meals logged yet")
	}

	totals := a.session.TodayTotals()
	p := a.session.Profile()
	if p == nil {
		fmt.Printf("Intake: %d kcal, P%d C%d F%d. Run 'setup' to get targets.\n",
			totals.Calories, totals.Protein, totals.Carbs, totals.Fat)
		return nil
	}

	remaining := a.session.RemainingToday()
	fmt.Printf("Calories: %d / %d kcal (%d left)\n", totals.Calories, p.TargetCals, remaining.Calories)
	fmt.Printf("Protein:  %d / %dg   Carbs: %d / %dg   Fat: %d / %dg\n",
		totals.Protein, p.TargetProtein, totals.Carbs, p.TargetCarbs, totals.Fat, p.TargetFat)
	fmt.Printf("Deficit today: %d kcal (maintenance %d)\n", a.session.TodayDeficit(), p.MaintenanceCalories())
	fmt.Printf("Deficit all time: %d kcal\n", a.session.TotalDeficit())

	if weights := a.session.Weights(); len(weights) > 0 {
		last := weights[len(weights)-1]
		fmt.Printf("Last weight: %.1f kg (%s)\n", last.WeightKg, last.Date)
	}
	return nil
}
