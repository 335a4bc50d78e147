// Package models defines the tracker's record types: the body-metrics
// profile, meal logs and weight logs, together with the closed enumerations
// used at the (de)serialization boundaries.
package models

import (
	"errors"
	"fmt"
)

// Gender is a closed enumeration.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ActivityLevel classifies habitual physical activity.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
)

// GoalType is the user's dietary goal.
type GoalType string

const (
	GoalLoseWeight GoalType = "LOSE_WEIGHT"
	GoalMaintain   GoalType = "MAINTAIN"
	GoalGainMuscle GoalType = "GAIN_MUSCLE"
)

var ErrUnknownEnumValue = errors.New("unknown enum value")

// ParseGender validates s against the Gender enumeration.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("gender %q: %w", s, ErrUnknownEnumValue)
}

// ParseActivityLevel validates s against the ActivityLevel enumeration.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch a := ActivityLevel(s); a {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive:
		return a, nil
	}
	return "", fmt.Errorf("activity level %q: %w", s, ErrUnknownEnumValue)
}

// ParseGoalType validates s against the GoalType enumeration.
func ParseGoalType(s string) (GoalType, error) {
	switch g := GoalType(s); g {
	case GoalLoseWeight, GoalMaintain, GoalGainMuscle:
		return g, nil
	}
	return "", fmt.Errorf("goal %q: %w", s, ErrUnknownEnumValue)
}

// Profile is the single per-user body-metrics record. At most one profile is
// active per session.
//
// TDEE is an optional late addition to the stored schema; on records written
// before the column existed it defaults to TargetCalories.
type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightCm      float64       `json:"height"`
	WeightKg      float64       `json:"weight"`
	Activity      ActivityLevel `json:"activityLevel"`
	Goal          GoalType      `json:"goal"`
	TargetCals    int           `json:"targetCalories"`
	TargetProtein int           `json:"targetProtein"`
	TargetCarbs   int           `json:"targetCarbs"`
	TargetFat     int           `json:"targetFat"`
	CreatedAt     string        `json:"createdAt"`
	TDEE          int           `json:"tdee"`
}

// MaintenanceCalories returns the profile's TDEE, falling back to the calorie
// target for records predating the TDEE column.
func (p Profile) MaintenanceCalories() int {
	if p.TDEE > 0 {
		return p.TDEE
	}
	return p.TargetCals
}
