package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mkuznecov/nutritrack/internal/client/models"
)

// The three fixed tables. Column layout evolves by appending only; rows
// written before a column existed decode with that column's default.
const (
	profileSheetName = "Profile"
	logsSheetName    = "Logs"
	weightSheetName  = "Weight"

	profileHeaderRange = "Profile!A1:N1"
	profileRowRange    = "Profile!A2:N2"
	logsHeaderRange    = "Logs!A1:I1"
	logsDataRange      = "Logs!A2:I"
	weightHeaderRange  = "Weight!A1:B1"
	weightDataRange    = "Weight!A2:B"
)

var (
	profileHeaders = []any{"ID", "Name", "Age", "Gender", "Height", "Weight", "Activity", "Goal", "TargetCals", "TargetP", "TargetC", "TargetF", "CreatedAt", "TDEE"}
	logsHeaders    = []any{"ID", "Date", "Time", "Type", "Description", "Calories", "P", "C", "F"}
	weightHeaders  = []any{"Date", "Weight"}
)

// sheetNames lists the tables created on provisioning, in order.
func sheetNames() []string {
	return []string{profileSheetName, logsSheetName, weightSheetName}
}

// logsWriteRange bounds the overwrite to exactly n data rows below the header.
func logsWriteRange(n int) string {
	return fmt.Sprintf("Logs!A2:I%d", 1+n)
}

func weightWriteRange(n int) string {
	return fmt.Sprintf("Weight!A2:B%d", 1+n)
}

// DecodeError marks a stored row that cannot be interpreted as a record.
// For logs and weights the row is skipped; for the profile row it means
// "no profile".
type DecodeError struct {
	Table  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s row: %s", e.Table, e.Reason)
}

// Cell coercion helpers. USER_ENTERED writes come back as formatted strings,
// but a manually edited sheet may hold raw numbers; both are accepted.
// Missing or blank numeric cells coerce to 0.

func cellString(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellInt(row []any, i int) int {
	if i >= len(row) || row[i] == nil {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func cellFloat(row []any, i int) float64 {
	if i >= len(row) || row[i] == nil {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// decodeProfile interprets the single profile row. The TDEE column was added
// after launch; rows without it default TDEE to the calorie target.
func decodeProfile(row []any) (models.Profile, error) {
	if len(row) < 13 {
		return models.Profile{}, &DecodeError{Table: profileSheetName, Reason: fmt.Sprintf("expected at least 13 cells, got %d", len(row))}
	}
	if cellString(row, 0) == "" {
		return models.Profile{}, &DecodeError{Table: profileSheetName, Reason: "missing id"}
	}

	gender, err := models.ParseGender(cellString(row, 3))
	if err != nil {
		return models.Profile{}, &DecodeError{Table: profileSheetName, Reason: err.Error()}
	}
	activity, err := models.ParseActivityLevel(cellString(row, 6))
	if err != nil {
		return models.Profile{}, &DecodeError{Table: profileSheetName, Reason: err.Error()}
	}
	goal, err := models.ParseGoalType(cellString(row, 7))
	if err != nil {
		return models.Profile{}, &DecodeError{Table: profileSheetName, Reason: err.Error()}
	}

	p := models.Profile{
		ID:            cellString(row, 0),
		Name:          cellString(row, 1),
		Age:           cellInt(row, 2),
		Gender:        gender,
		HeightCm:      cellFloat(row, 4),
		WeightKg:      cellFloat(row, 5),
		Activity:      activity,
		Goal:          goal,
		TargetCals:    cellInt(row, 8),
		TargetProtein: cellInt(row, 9),
		TargetCarbs:   cellInt(row, 10),
		TargetFat:     cellInt(row, 11),
		CreatedAt:     cellString(row, 12),
		TDEE:          cellInt(row, 13),
	}
	if p.TDEE == 0 {
		p.TDEE = p.TargetCals
	}
	return p, nil
}

// encodeProfile is the inverse of decodeProfile, always emitting the full
// current column set.
func encodeProfile(p models.Profile) []any {
	return []any{
		p.ID, p.Name, p.Age, string(p.Gender), p.HeightCm, p.WeightKg,
		string(p.Activity), string(p.Goal), p.TargetCals, p.TargetProtein,
		p.TargetCarbs, p.TargetFat, p.CreatedAt, p.MaintenanceCalories(),
	}
}

func decodeMealLog(row []any) (models.MealLog, error) {
	id := cellString(row, 0)
	if id == "" {
		return models.MealLog{}, &DecodeError{Table: logsSheetName, Reason: "missing id"}
	}
	date := cellString(row, 1)
	if date == "" {
		return models.MealLog{}, &DecodeError{Table: logsSheetName, Reason: "missing date"}
	}
	mealType, err := models.ParseMealType(cellString(row, 3))
	if err != nil {
		return models.MealLog{}, &DecodeError{Table: logsSheetName, Reason: err.Error()}
	}

	return models.MealLog{
		ID:          id,
		Date:        date,
		Time:        cellString(row, 2),
		Type:        mealType,
		Description: cellString(row, 4),
		Calories:    cellInt(row, 5),
		Protein:     cellInt(row, 6),
		Carbs:       cellInt(row, 7),
		Fat:         cellInt(row, 8),
	}, nil
}

// encodeMealLog deliberately omits ImageRef: images are session-local and
// never synced.
func encodeMealLog(l models.MealLog) []any {
	return []any{l.ID, l.Date, l.Time, string(l.Type), l.Description, l.Calories, l.Protein, l.Carbs, l.Fat}
}

func decodeWeightLog(row []any) (models.WeightLog, error) {
	date := cellString(row, 0)
	if date == "" {
		return models.WeightLog{}, &DecodeError{Table: weightSheetName, Reason: "missing date"}
	}
	kg := cellFloat(row, 1)
	if kg <= 0 {
		return models.WeightLog{}, &DecodeError{Table: weightSheetName, Reason: "non-positive weight"}
	}
	return models.WeightLog{Date: date, WeightKg: kg}, nil
}

func encodeWeightLog(w models.WeightLog) []any {
	return []any{w.Date, w.WeightKg}
}
