// Package metadata is a small key/value store for client state that is not a
// record collection: the last-used profile pointer and the encrypted session
// token cache.
package metadata

import "context"

// Keys used by the client.
const (
	KeyLastUser    = "last_user"
	KeyTokenCipher = "token_cipher"
	KeyTokenNonce  = "token_nonce"
	KeyTokenSalt   = "token_salt"
	KeyTokenVerify = "token_verifier"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
