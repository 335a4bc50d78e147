package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/common"
)

// Fallback targets used when the AI planner is unreachable during setup.
var defaultPlanTargets = struct {
	calories, protein, carbs, fat int
}{2000, 150, 200, 65}

// Setup walks through onboarding: body metrics, activity level and goal.
// Daily targets are derived by the AI planner; when that fails, generic
// defaults are applied and can be edited later with 'goals'.
func (a *App) Setup(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	name, err := getSimpleText(a.reader, "Your name", os.Stdout)
	if err != nil {
		return err
	}
	age, err := GetInt(a.reader, "Age", 30, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	genderStr, err := GetChoice(a.reader, "Gender", []string{string(models.GenderMale), string(models.GenderFemale)}, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	height, err := GetFloat(a.reader, "Height (cm)", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	weight, err := GetFloat(a.reader, "Weight (kg)", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	activityStr, err := GetChoice(a.reader, "Activity level", []string{
		string(models.ActivitySedentary),
		string(models.ActivityLightlyActive),
		string(models.ActivityModeratelyActive),
		string(models.ActivityVeryActive),
	}, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	goalStr, err := GetChoice(a.reader, "Goal", []string{
		string(models.GoalLoseWeight),
		string(models.GoalMaintain),
		string(models.GoalGainMuscle),
	}, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}

	p := models.Profile{
		Name:     name,
		Age:      age,
		Gender:   models.Gender(genderStr),
		HeightCm: height,
		WeightKg: weight,
		Activity: models.ActivityLevel(activityStr),
		Goal:     models.GoalType(goalStr),
	}

	fmt.Println("Calculating your daily targets...")
	plan, err := a.estimator.PlanFromProfile(ctx, p)
	if err != nil {
		a.log.Warn(ctx, "planner unavailable, applying default targets", "error", err)
		fmt.Println("Could not reach the planner; applying default targets. Edit them with 'goals'.")
		p.TargetCals = defaultPlanTargets.calories
		p.TargetProtein = defaultPlanTargets.protein
		p.TargetCarbs = defaultPlanTargets.carbs
		p.TargetFat = defaultPlanTargets.fat
	} else {
		p.TDEE = plan.TDEE
		p.TargetCals = plan.TargetCalories
		p.TargetProtein = plan.TargetProtein
		p.TargetCarbs = plan.TargetCarbs
		p.TargetFat = plan.TargetFat
		fmt.Println(plan.Advice)
	}

	if err := a.session.CompleteProfile(ctx, p); err != nil {
		fmt.Println("Could not save your profile:", err)
		return err
	}
	if err := a.session.RecordWeight(ctx, a.clock.Today(), weight); err != nil {
		a.log.Warn(ctx, "could not record initial weight", "error", err)
	}

	a.username = name
	fmt.Printf("All set! Daily targets: %d kcal, %dg protein, %dg carbs, %dg fat.\n",
		p.TargetCals, p.TargetProtein, p.TargetCarbs, p.TargetFat)
	return nil
}
