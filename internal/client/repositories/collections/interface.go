// Package collections persists whole record collections (meal logs, weight
// history) in the local fallback store as one serialized blob per
// (kind, username) pair. The tracker always rewrites a collection in full,
// so there is no per-record addressing here.
package collections

import "context"

// Kind names one stored collection type.
type Kind string

const (
	KindMealLogs   Kind = "meal_logs"
	KindWeightLogs Kind = "weight_logs"
)

// Repository stores one JSON-serialized collection per (kind, username).
type Repository interface {
	// Save replaces the stored collection.
	Save(ctx context.Context, kind Kind, username string, data []byte) error

	// Load returns the stored collection, or nil when absent.
	Load(ctx context.Context, kind Kind, username string) ([]byte, error)
}
