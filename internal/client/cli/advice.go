package cli

import (
	"context"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/client/estimator"
	"github.com/mkuznecov/nutritrack/internal/common"
)

// Advice prints a short AI summary of recent eating habits. The output is
// advisory; on failure a static encouragement is shown instead.
func (a *App) Advice(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}
	p := a.session.Profile()
	if p == nil {
		fmt.Println("Run 'setup' first.")
		return common.ErrorNotFound
	}

	advice, err := a.estimator.DailyAdvice(ctx, *p, a.session.Meals())
	if err != nil {
		a.log.Warn(ctx, "advice unavailable", "error", err)
		advice = "Great job tracking your meals!"
	}
	fmt.Println(advice)
	return nil
}

// Suggest asks for a meal idea that fits the remaining macro budget.
func (a *App) Suggest(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}
	p := a.session.Profile()
	if p == nil {
		fmt.Println("Run 'setup' first.")
		return common.ErrorNotFound
	}

	left := a.session.RemainingToday()
	suggestion, err := a.estimator.SuggestMeal(ctx, estimator.Remaining{
		Calories: left.Calories,
		Protein:  left.Protein,
		Carbs:    left.Carbs,
		Fat:      left.Fat,
	}, p.Goal)
	if err != nil {
		a.log.Warn(ctx, "suggestion unavailable", "error", err)
		suggestion = "Couldn't get a suggestion right now. Try again later."
	}
	fmt.Println(suggestion)
	return nil
}
