// Package localstore provides the account-free persistence path: the same
// three-collection contract as the spreadsheet engine, backed by a local
// SQLite database keyed by the user-visible profile name.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/client/migrations"
	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/client/repositories/collections"
	"github.com/mkuznecov/nutritrack/internal/client/repositories/metadata"
	"github.com/mkuznecov/nutritrack/internal/client/repositories/profiles"
	"github.com/pressly/goose/v3"
)

// InitDatabase opens the local SQLite database and applies pending
// migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Store persists the three record collections for one named user. It is the
// offline counterpart of the spreadsheet sync engine and satisfies the same
// persistence contract.
type Store struct {
	username string

	profileRepo    profiles.Repository
	collectionRepo collections.Repository
	metadataRepo   metadata.Repository
}

// New binds a Store for username on top of db.
func New(db *sql.DB, username string) *Store {
	return &Store{
		username:       username,
		profileRepo:    profiles.NewSQLiteRepository(db),
		collectionRepo: collections.NewSQLiteRepository(db),
		metadataRepo:   metadata.NewSQLiteRepository(db),
	}
}

// Load returns the stored profile and collections for the bound user.
// Absent or corrupted data loads as empty, never as an error: the local
// store must not be able to lock the user out.
func (s *Store) Load(ctx context.Context) (*models.Profile, []models.MealLog, []models.WeightLog, error) {
	profile, err := s.profileRepo.GetByName(ctx, s.username)
	if err != nil {
		return nil, nil, nil, err
	}

	var mealLogs []models.MealLog
	if data, err := s.collectionRepo.Load(ctx, collections.KindMealLogs, s.username); err != nil {
		return nil, nil, nil, err
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &mealLogs); err != nil {
			mealLogs = nil
		}
	}

	var weightLogs []models.WeightLog
	if data, err := s.collectionRepo.Load(ctx, collections.KindWeightLogs, s.username); err != nil {
		return nil, nil, nil, err
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &weightLogs); err != nil {
			weightLogs = nil
		}
	}

	return profile, mealLogs, weightLogs, nil
}

// SaveProfile stores the profile and records its name as the last-used user.
func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	if err := s.profileRepo.Save(ctx, p); err != nil {
		return err
	}
	return s.metadataRepo.Set(ctx, metadata.KeyLastUser, []byte(p.Name))
}

// SaveMealLogs replaces the whole stored meal-log collection.
func (s *Store) SaveMealLogs(ctx context.Context, logs []models.MealLog) error {
	return s.saveCollection(ctx, collections.KindMealLogs, logs)
}

// SaveWeightLogs replaces the whole stored weight-log collection.
func (s *Store) SaveWeightLogs(ctx context.Context, history []models.WeightLog) error {
	return s.saveCollection(ctx, collections.KindWeightLogs, history)
}

func (s *Store) saveCollection(ctx context.Context, kind collections.Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	return s.collectionRepo.Save(ctx, kind, s.username, data)
}

// ListProfiles returns every locally stored profile, newest first, for the
// profile picker shown before login.
func ListProfiles(ctx context.Context, db *sql.DB) ([]models.Profile, error) {
	return profiles.NewSQLiteRepository(db).List(ctx)
}

// LastUser returns the name of the most recently saved profile, or "" when
// none was recorded.
func LastUser(ctx context.Context, db *sql.DB) (string, error) {
	v, err := metadata.NewSQLiteRepository(db).Get(ctx, metadata.KeyLastUser)
	if err != nil {
		return "", err
	}
	return string(v), nil
}
