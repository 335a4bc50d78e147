// Package profiles persists user profiles in the local fallback store,
// keyed by the user-visible name.
package profiles

import (
	"context"

	"github.com/mkuznecov/nutritrack/internal/client/models"
)

// Repository describes profile storage for the local fallback path.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Save inserts a profile or replaces an existing one with the same name.
	Save(ctx context.Context, p models.Profile) error

	// GetByName returns the profile stored under name, or nil when absent.
	// A corrupted stored record is reported as absent, not as an error.
	GetByName(ctx context.Context, name string) (*models.Profile, error)

	// List returns all stored profiles ordered by creation time descending.
	List(ctx context.Context) ([]models.Profile, error)
}
