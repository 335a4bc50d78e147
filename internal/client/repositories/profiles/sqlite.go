package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a profile by name. The record is stored as a JSON blob;
// created_at is duplicated into its own column for ordering.
func (r *SQLiteRepository) Save(ctx context.Context, p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	query := `INSERT INTO profiles (name, data, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data, created_at = excluded.created_at
	`
	if _, err := r.db.ExecContext(ctx, query, p.Name, data, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByName returns the stored profile or nil when absent. Undecodable data
// is treated as absent so a corrupted store never blocks login.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile[%s]: %w", name, err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

// List returns all decodable profiles, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var p models.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
