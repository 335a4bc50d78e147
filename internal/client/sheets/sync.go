package sheets

import (
	"context"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/common"
)

// Load hydrates all three collections in a single batched read.
//
// An absent or undecodable profile row is not an error: it returns a nil
// profile, signaling that onboarding is needed. Malformed log and weight rows
// are skipped individually. Meal logs are stored chronologically ascending
// and returned most-recent-first.
func (s *Service) Load(ctx context.Context) (*models.Profile, []models.MealLog, []models.WeightLog, error) {
	if !s.Bound() {
		return nil, nil, nil, common.ErrStoreNotBound
	}

	ranges, err := s.client.BatchGet(ctx, s.spreadsheetID, []string{profileRowRange, logsDataRange, weightDataRange})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load tables: %w", err)
	}

	var profile *models.Profile
	if rows := ranges[0]; len(rows) > 0 {
		p, err := decodeProfile(rows[0])
		if err != nil {
			s.log.Warn(ctx, "profile row undecodable, treating as no profile", "err", err)
		} else {
			profile = &p
		}
	}

	mealLogs := make([]models.MealLog, 0, len(ranges[1]))
	for _, row := range ranges[1] {
		l, err := decodeMealLog(row)
		if err != nil {
			s.log.Warn(ctx, "skipping malformed log row", "err", err)
			continue
		}
		mealLogs = append(mealLogs, l)
	}
	models.ReverseMeals(mealLogs)

	weightLogs := make([]models.WeightLog, 0, len(ranges[2]))
	for _, row := range ranges[2] {
		w, err := decodeWeightLog(row)
		if err != nil {
			s.log.Warn(ctx, "skipping malformed weight row", "err", err)
			continue
		}
		weightLogs = append(weightLogs, w)
	}

	return profile, mealLogs, weightLogs, nil
}

// SaveProfile overwrites the single profile row. Cardinality is fixed at
// one, so no clear is needed.
func (s *Service) SaveProfile(ctx context.Context, p models.Profile) error {
	if !s.Bound() {
		return common.ErrStoreNotBound
	}
	if err := s.client.WriteRange(ctx, s.spreadsheetID, profileRowRange, [][]any{encodeProfile(p)}); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SaveMealLogs performs full-table reconciliation: clear the data range, then
// write every log sorted ascending by (date, time). Client-side edits and
// deletes have no stable row correlation, so the whole table is rewritten on
// every mutation; at personal-use scale correctness beats incremental
// patching. An empty input leaves the table cleared with the header intact.
//
// A failure between clear and write leaves the table partially written; the
// error is surfaced once and not retried.
func (s *Service) SaveMealLogs(ctx context.Context, logs []models.MealLog) error {
	if !s.Bound() {
		return common.ErrStoreNotBound
	}

	if err := s.client.ClearRange(ctx, s.spreadsheetID, logsDataRange); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	if len(logs) == 0 {
		return nil
	}

	sorted := make([]models.MealLog, len(logs))
	copy(sorted, logs)
	models.SortMealsForStorage(sorted)

	rows := make([][]any, len(sorted))
	for i, l := range sorted {
		rows[i] = encodeMealLog(l)
	}
	if err := s.client.WriteRange(ctx, s.spreadsheetID, logsWriteRange(len(rows)), rows); err != nil {
		return fmt.Errorf("write logs: %w", err)
	}
	return nil
}

// SaveWeightLogs is the same clear-then-write pattern, sorted ascending by
// date. The at-most-one-entry-per-date invariant is enforced by the caller
// before this call; the engine does not deduplicate.
func (s *Service) SaveWeightLogs(ctx context.Context, history []models.WeightLog) error {
	if !s.Bound() {
		return common.ErrStoreNotBound
	}

	if err := s.client.ClearRange(ctx, s.spreadsheetID, weightDataRange); err != nil {
		return fmt.Errorf("clear weight history: %w", err)
	}
	if len(history) == 0 {
		return nil
	}

	sorted := make([]models.WeightLog, len(history))
	copy(sorted, history)
	models.SortWeights(sorted)

	rows := make([][]any, len(sorted))
	for i, w := range sorted {
		rows[i] = encodeWeightLog(w)
	}
	if err := s.client.WriteRange(ctx, s.spreadsheetID, weightWriteRange(len(rows)), rows); err != nil {
		return fmt.Errorf("write weight history: %w", err)
	}
	return nil
}
