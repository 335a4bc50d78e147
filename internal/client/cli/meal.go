package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/common"
	"github.com/mkuznecov/nutritrack/internal/datex"
)

// Log records one meal. The user can point at a photo, type a description,
// or both; the estimator fills in the macros. When the estimator is
// unreachable the macros are entered by hand.
func (a *App) Log(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	imagePath, err := getSimpleText(a.reader, "Photo path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Describe the meal (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath == "" && description == "" {
		fmt.Println("Give me a photo or a description.")
		return common.ErrNoEstimatorInput
	}

	var imageBase64 string
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			fmt.Println("Could not read photo:", err)
			return err
		}
		imageBase64 = base64.StdEncoding.EncodeToString(data)
	}

	meal := models.MealLog{Description: description}

	fmt.Println("Analyzing...")
	estimate, err := a.estimator.EstimateFood(ctx, imageBase64, description)
	if err != nil {
		a.log.Warn(ctx, "estimation failed, falling back to manual entry", "error", err)
		fmt.Println("Estimation failed; enter the macros yourself.")
		if meal.Calories, err = GetInt(a.reader, "Calories (kcal)", 0, os.Stdout); err != nil {
			fmt.Println(err)
			return err
		}
		if meal.Protein, err = GetInt(a.reader, "Protein (g)", 0, os.Stdout); err != nil {
			fmt.Println(err)
			return err
		}
		if meal.Carbs, err = GetInt(a.reader, "Carbs (g)", 0, os.Stdout); err != nil {
			fmt.Println(err)
			return err
		}
		if meal.Fat, err = GetInt(a.reader, "Fat (g)", 0, os.Stdout); err != nil {
			fmt.Println(err)
			return err
		}
	} else {
		if meal.Description == "" {
			meal.Description = estimate.FoodName
		}
		meal.Calories = estimate.Calories
		meal.Protein = estimate.Protein
		meal.Carbs = estimate.Carbs
		meal.Fat = estimate.Fat
		fmt.Printf("%s: %d kcal, %dg protein, %dg carbs, %dg fat\n",
			estimate.FoodName, estimate.Calories, estimate.Protein, estimate.Carbs, estimate.Fat)
		if estimate.Reasoning != "" {
			fmt.Println(estimate.Reasoning)
		}
	}

	typeStr, err := GetChoice(a.reader, "Meal type", []string{
		string(models.MealBreakfast),
		string(models.MealLunch),
		string(models.MealDinner),
		string(models.MealSnack),
	}, os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}
	meal.Type = models.MealType(typeStr)

	added, err := a.session.AddMeal(ctx, meal)
	if err != nil {
		fmt.Println("Could not save the meal:", err)
		return err
	}
	fmt.Printf("Logged %s (%s %s), id %s.\n", added.Description, added.Date, added.Time, added.ID)
	return nil
}

// Meals lists the logged meals, most recent first.
func (a *App) Meals(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	meals := a.session.Meals()
	if len(meals) == 0 {
		fmt.Println("Nothing logged yet.")
		return nil
	}
	for _, m := range meals {
		fmt.Printf("%s %s  %-9s %-30s %4d kcal  P%d C%d F%d  [%s]\n",
			m.Date, m.Time, m.Type, m.Description, m.Calories, m.Protein, m.Carbs, m.Fat, m.ID)
	}
	return nil
}

// Delete removes one meal by its id.
func (a *App) Delete(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	id, err := getSimpleText(a.reader, "Meal id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.DeleteMeal(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No meal with that id.")
		} else {
			fmt.Println("Could not delete the meal:", err)
		}
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Weight records a body-weight entry, defaulting to today.
func (a *App) Weight(ctx context.Context) error {
	if a.session == nil {
		fmt.Println("Log in first.")
		return common.ErrorUnauthorized
	}

	date, err := getSimpleText(a.reader, fmt.Sprintf("Date [%s]", a.clock.Today()), os.Stdout)
	if err != nil {
		return err
	}
	if date == "" {
		date = a.clock.Today()
	}
	if !datex.ValidDate(date) {
		fmt.Println("Dates look like 2024-02-10.")
		return fmt.Errorf("invalid date %q", date)
	}

	kg, err := GetFloat(a.reader, "Weight (kg)", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return err
	}

	if err := a.session.RecordWeight(ctx, date, kg); err != nil {
		fmt.Println("Could not record weight:", err)
		return err
	}
	fmt.Println("Recorded.")
	return nil
}
