package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mkuznecov/nutritrack/internal/common"
)

// Goals edits the daily macro targets, showing the current values as
// defaults.
func (a *App) Goals(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}
	p := a.session.Profile()
	if p == nil {
		fmt.Println("Run 'setup' first.")
		return common.ErrorNotFound
	}

	calories, err := GetInt(a.reader, "Daily calories (kcal)", p.TargetCals, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	protein, err := GetInt(a.reader, "Protein (g)", p.TargetProtein, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	carbs, err := GetInt(a.reader, "Carbs (g)", p.TargetCarbs, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	fat, err := GetInt(a.reader, "Fat (g)", p.TargetFat, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}

	if err := a.session.UpdateGoals(ctx, calories, protein, carbs, fat); err != nil {
		fmt.Println("Could not save goals:", err)
		return err
	}
	fmt.Println("Goals updated.")
	return nil
}

// TDEE sets maintenance calories on the profile. The deficit numbers on the
// dashboard are computed against this value. The AI-recalculated estimate is
// offered as the default; the planner being down falls back to the current
// value, entry stays manual either way.
func (a *App) TDEE(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}
	p := a.session.Profile()
	if p == nil {
		fmt.Println("Run 'setup' first.")
		return common.ErrorNotFound
	}

	suggested := p.MaintenanceCalories()
	fmt.Println("Recalculating your maintenance calories...")
	if plan, err := a.estimator.PlanFromProfile(ctx, *p); err != nil {
		a.log.Warn(ctx, "planner unavailable, keeping current TDEE as default", "error", err)
	} else if plan.TDEE > 0 {
		suggested = plan.TDEE
	}

	tdee, err := GetInt(a.reader, "Maintenance calories (TDEE)", suggested, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}

	if err := a.session.SetTDEE(ctx, tdee); err != nil {
		fmt.Println("Could not save TDEE:", err)
		return err
	}
	fmt.Println("TDEE updated.")
	return nil
}
