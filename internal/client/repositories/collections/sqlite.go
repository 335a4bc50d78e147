package collections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// Save upserts the collection blob for (kind, username).
func (r *SQLiteRepository) Save(ctx context.Context, kind Kind, username string, data []byte) error {
	query := `INSERT INTO collections (kind, username, data)
			VALUES (?, ?, ?)
			ON CONFLICT(kind, username) DO UPDATE SET data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, string(kind), username, data); err != nil {
		return fmt.Errorf("failed to upsert collection[%s/%s]: %w", kind, username, err)
	}
	return nil
}

// Load returns the stored blob, or nil when nothing was saved yet.
func (r *SQLiteRepository) Load(ctx context.Context, kind Kind, username string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE kind = ? AND username = ?`,
		string(kind), username).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection[%s/%s]: %w", kind, username, err)
	}
	return data, nil
}
