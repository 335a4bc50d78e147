// Package common defines shared constants and sentinel errors used across
// the NutriTrack client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrConsentDenied   = errors.New("consent denied")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrNoStoredSession = errors.New("no stored session")

	// Sync-level errors.
	ErrStoreNotBound = errors.New("spreadsheet not initialized")

	// Estimator errors.
	ErrNoEstimatorInput = errors.New("neither image nor text provided")
)
