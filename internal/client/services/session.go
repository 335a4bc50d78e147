// Package services contains the application services of the NutriTrack
// client. This file defines the session service: the in-memory working set
// for one logged-in user, with optimistic mutations persisted through a
// pluggable store.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/common"
	"github.com/mkuznecov/nutritrack/internal/datex"
	"github.com/mkuznecov/nutritrack/internal/logging"
)

// Store is the persistence contract shared by the spreadsheet engine and the
// local SQLite store. Collections are always rewritten in full.
type Store interface {
	Load(ctx context.Context) (*models.Profile, []models.MealLog, []models.WeightLog, error)
	SaveProfile(ctx context.Context, p models.Profile) error
	SaveMealLogs(ctx context.Context, logs []models.MealLog) error
	SaveWeightLogs(ctx context.Context, history []models.WeightLog) error
}

// MacroTotals is one day's consumed macronutrients.
type MacroTotals struct {
	Calories int
	Protein  int
	Carbs    int
	Fat      int
}

// Session holds the working set for one logged-in user. Mutations apply to
// the in-memory view first and then persist the whole affected collection.
// A failed save keeps the optimistic in-memory state and surfaces the error
// once; the view may then be ahead of the store until the next successful
// save rewrites the collection. The mutex serializes mutations within the
// session, keeping at most one save in flight per table.
type Session struct {
	mu    sync.Mutex
	store Store
	clock *datex.Clock
	log   logging.Logger

	profile *models.Profile
	meals   []models.MealLog   // most-recent-first
	weights []models.WeightLog // ascending by date
}

// NewSession binds a session to a store. Call Start before anything else.
func NewSession(store Store, clock *datex.Clock, log logging.Logger) *Session {
	return &Session{store: store, clock: clock, log: log}
}

// Start loads the stored state. A nil profile after a successful Start means
// the user still has to complete onboarding.
func (s *Session) Start(ctx context.Context) error {
	profile, meals, weights, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.meals = meals
	s.weights = weights
	models.SortWeights(s.weights)
	return nil
}

// NeedsOnboarding reports whether no profile has been saved yet.
func (s *Session) NeedsOnboarding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile == nil
}

// Profile returns a copy of the current profile, or nil during onboarding.
func (s *Session) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Meals returns the meal logs most-recent-first.
func (s *Session) Meals() []models.MealLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MealLog, len(s.meals))
	copy(out, s.meals)
	return out
}

// Weights returns the weight history ascending by date.
func (s *Session) Weights() []models.WeightLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WeightLog, len(s.weights))
	copy(out, s.weights)
	return out
}

// CompleteProfile saves the onboarding result as the session profile.
// A missing ID and creation date are filled in here.
func (s *Session) CompleteProfile(ctx context.Context, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = s.clock.Today()
	}
	return s.saveProfileLocked(ctx, p)
}

// UpdateGoals replaces the daily macro targets.
func (s *Session) UpdateGoals(ctx context.Context, calories, protein, carbs, fat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return common.ErrorNotFound
	}
	p := *s.profile
	p.TargetCals = calories
	p.TargetProtein = protein
	p.TargetCarbs = carbs
	p.TargetFat = fat
	return s.saveProfileLocked(ctx, p)
}

// SetTDEE records the maintenance-calorie estimate on the profile.
func (s *Session) SetTDEE(ctx context.Context, tdee int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return common.ErrorNotFound
	}
	p := *s.profile
	p.TDEE = tdee
	return s.saveProfileLocked(ctx, p)
}

// AddMeal appends a meal log with a fresh ID and persists the collection.
// Date and time default to now when empty.
func (s *Session) AddMeal(ctx context.Context, meal models.MealLog) (models.MealLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal.ID = uuid.NewString()
	if meal.Date == "" {
		meal.Date = s.clock.Today()
	}
	if meal.Time == "" {
		meal.Time = s.clock.TimeOfDay()
	}

	next := make([]models.MealLog, 0, len(s.meals)+1)
	next = append(next, meal)
	next = append(next, s.meals...)
	models.SortMealsForDisplay(next)

	// optimistic: the meal stays in the view even when the save fails
	err := s.replaceMealsLocked(ctx, next)
	return meal, err
}

// DeleteMeal removes the log with the given ID and persists the collection.
// Returns common.ErrorNotFound when no log matches.
func (s *Session) DeleteMeal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := models.DeleteMealByID(s.meals, id)
	if len(next) == len(s.meals) {
		return common.ErrorNotFound
	}
	return s.replaceMealsLocked(ctx, next)
}

// RecordWeight upserts a weight entry by date. When the entry is today or
// later, or ends up the chronologically last one, the profile's current
// weight follows it; the profile save runs after the weight save so the
// history is never behind the profile.
func (s *Session) RecordWeight(ctx context.Context, date string, weightKg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !datex.ValidDate(date) {
		return fmt.Errorf("invalid date %q", date)
	}

	next := models.UpsertWeight(s.weights, models.WeightLog{Date: date, WeightKg: weightKg})
	s.weights = next
	if err := s.store.SaveWeightLogs(ctx, next); err != nil {
		return fmt.Errorf("failed to save weight history: %w", err)
	}

	if s.profile != nil && (date >= s.clock.Today() || date == models.LatestWeightDate(next)) {
		p := *s.profile
		p.WeightKg = weightKg
		if err := s.saveProfileLocked(ctx, p); err != nil {
			s.log.Warn(ctx, "weight saved but profile update failed", "error", err)
		}
	}
	return nil
}

// TodayTotals sums the macros consumed today.
func (s *Session) TodayTotals() MacroTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsForLocked(s.clock.Today())
}

// RemainingToday returns today's targets minus today's intake. Values go
// negative once a target is exceeded.
func (s *Session) RemainingToday() MacroTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return MacroTotals{}
	}
	consumed := s.totalsForLocked(s.clock.Today())
	return MacroTotals{
		Calories: s.profile.TargetCals - consumed.Calories,
		Protein:  s.profile.TargetProtein - consumed.Protein,
		Carbs:    s.profile.TargetCarbs - consumed.Carbs,
		Fat:      s.profile.TargetFat - consumed.Fat,
	}
}

// TodayDeficit returns maintenance calories minus today's intake, or 0
// during onboarding.
func (s *Session) TodayDeficit() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return 0
	}
	return s.profile.MaintenanceCalories() - s.totalsForLocked(s.clock.Today()).Calories
}

// TotalDeficit sums (maintenance - intake) over every day with at least one
// logged meal, today included. Days without logs do not count.
func (s *Session) TotalDeficit() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return 0
	}
	maintenance := s.profile.MaintenanceCalories()
	total := 0
	for _, calories := range models.CaloriesByDate(s.meals) {
		total += maintenance - calories
	}
	return total
}

func (s *Session) totalsForLocked(date string) MacroTotals {
	var t MacroTotals
	for _, m := range s.meals {
		if m.Date != date {
			continue
		}
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	return t
}

// saveProfileLocked applies the profile optimistically and persists it. On
// failure the in-memory profile is kept; the caller reports the error and
// the next successful save re-syncs the store.
func (s *Session) saveProfileLocked(ctx context.Context, p models.Profile) error {
	s.profile = &p
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Session) replaceMealsLocked(ctx context.Context, next []models.MealLog) error {
	s.meals = next
	if err := s.store.SaveMealLogs(ctx, next); err != nil {
		return fmt.Errorf("failed to save meal logs: %w", err)
	}
	return nil
}
