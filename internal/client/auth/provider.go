// Package auth produces the bearer tokens the spreadsheet backend requires.
// Two sources are supported: a token the user pastes in (the browser
// consent flow happens elsewhere) and a Google service account that the
// client exchanges for an access token itself.
package auth

import "context"

// Provider yields a bearer token for the Google APIs. Implementations may
// cache; Token is called before every sync batch.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a Provider around a fixed, user-supplied access token.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}
