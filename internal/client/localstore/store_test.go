package localstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openStoreDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "local.db")
	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleProfile(name string) models.Profile {
	return models.Profile{
		ID:            "p-" + name,
		Name:          name,
		Age:           34,
		Gender:        models.GenderMale,
		HeightCm:      180,
		WeightKg:      82,
		Activity:      models.ActivityModeratelyActive,
		Goal:          models.GoalLoseWeight,
		TargetCals:    2100,
		TargetProtein: 160,
		TargetCarbs:   200,
		TargetFat:     70,
		CreatedAt:     "2024-02-10",
		TDEE:          2600,
	}
}

func TestLoad_EmptyStore(t *testing.T) {
	db := openStoreDB(t)
	store := New(db, "alice")

	profile, meals, weights, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, profile)
	require.Empty(t, meals)
	require.Empty(t, weights)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openStoreDB(t)
	store := New(db, "alice")
	ctx := context.Background()

	wantProfile := sampleProfile("alice")
	wantMeals := []models.MealLog{
		{ID: "m1", Date: "2024-02-10", Time: "08:00", Type: models.MealBreakfast, Description: "Oatmeal", Calories: 320, Protein: 12, Carbs: 55, Fat: 6},
		{ID: "m2", Date: "2024-02-10", Time: "13:00", Type: models.MealLunch, Description: "Chicken salad", Calories: 540, Protein: 45, Carbs: 20, Fat: 28},
	}
	wantWeights := []models.WeightLog{
		{Date: "2024-02-09", WeightKg: 82.4},
		{Date: "2024-02-10", WeightKg: 82.0},
	}

	require.NoError(t, store.SaveProfile(ctx, wantProfile))
	require.NoError(t, store.SaveMealLogs(ctx, wantMeals))
	require.NoError(t, store.SaveWeightLogs(ctx, wantWeights))

	profile, meals, weights, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Equal(t, wantProfile, *profile)
	require.Equal(t, wantMeals, meals)
	require.Equal(t, wantWeights, weights)
}

func TestLoad_IsolatedPerUser(t *testing.T) {
	db := openStoreDB(t)
	ctx := context.Background()

	alice := New(db, "alice")
	require.NoError(t, alice.SaveProfile(ctx, sampleProfile("alice")))
	require.NoError(t, alice.SaveMealLogs(ctx, []models.MealLog{
		{ID: "m1", Date: "2024-02-10", Time: "08:00", Type: models.MealBreakfast, Description: "Toast", Calories: 200},
	}))

	bob := New(db, "bob")
	profile, meals, weights, err := bob.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, profile)
	require.Empty(t, meals)
	require.Empty(t, weights)
}

func TestLoad_CorruptedCollectionIsEmpty(t *testing.T) {
	db := openStoreDB(t)
	store := New(db, "alice")
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, sampleProfile("alice")))
	_, err := db.Exec(`INSERT INTO collections (kind, username, data) VALUES ('meal_logs', 'alice', 'not json')`)
	require.NoError(t, err)

	profile, meals, _, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Empty(t, meals)
}

func TestSaveProfile_UpdatesLastUser(t *testing.T) {
	db := openStoreDB(t)
	ctx := context.Background()

	last, err := LastUser(ctx, db)
	require.NoError(t, err)
	require.Empty(t, last)

	require.NoError(t, New(db, "alice").SaveProfile(ctx, sampleProfile("alice")))
	require.NoError(t, New(db, "bob").SaveProfile(ctx, sampleProfile("bob")))

	last, err = LastUser(ctx, db)
	require.NoError(t, err)
	require.Equal(t, "bob", last)
}

func TestListProfiles(t *testing.T) {
	db := openStoreDB(t)
	ctx := context.Background()

	old := sampleProfile("alice")
	old.CreatedAt = "2023-11-01"
	recent := sampleProfile("bob")
	recent.CreatedAt = "2024-02-10"

	require.NoError(t, New(db, "alice").SaveProfile(ctx, old))
	require.NoError(t, New(db, "bob").SaveProfile(ctx, recent))

	list, err := ListProfiles(ctx, db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "bob", list[0].Name)
	require.Equal(t, "alice", list[1].Name)
}
