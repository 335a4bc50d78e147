// Package estimator provides AI-backed nutrition estimation: analyzing a
// meal from a photo or description, deriving daily targets from body
// metrics, and generating short coaching texts. All of it is best-effort
// advisory output; callers fall back to static text when a call fails.
package estimator

import (
	"context"

	"github.com/mkuznecov/nutritrack/internal/client/models"
)

// FoodEstimate is the model's nutritional breakdown of one meal.
type FoodEstimate struct {
	FoodName  string
	Calories  int
	Protein   int
	Carbs     int
	Fat       int
	Reasoning string
}

// Plan is a derived set of daily targets plus a short advice paragraph.
// TDEE is the estimated maintenance calories the targets were derived from.
type Plan struct {
	TDEE           int
	TargetCalories int
	TargetProtein  int
	TargetCarbs    int
	TargetFat      int
	Advice         string
}

// Remaining is the macro budget left for the day. Values may be negative
// once a target has been exceeded.
type Remaining struct {
	Calories int
	Protein  int
	Carbs    int
	Fat      int
}

// Estimator is the AI collaborator of the tracker.
type Estimator interface {
	// EstimateFood analyzes a meal from a JPEG image (base64, no data URL
	// prefix), a free-text description, or both. With neither input it
	// returns common.ErrNoEstimatorInput.
	EstimateFood(ctx context.Context, imageBase64, description string) (*FoodEstimate, error)

	// PlanFromProfile derives daily calorie and macro targets from body
	// metrics, activity level and goal.
	PlanFromProfile(ctx context.Context, p models.Profile) (*Plan, error)

	// DailyAdvice produces a short coaching summary from recent logs.
	DailyAdvice(ctx context.Context, p models.Profile, recent []models.MealLog) (string, error)

	// SuggestMeal proposes what to eat next given the remaining budget.
	SuggestMeal(ctx context.Context, remaining Remaining, goal models.GoalType) (string, error)
}
