package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/client/repositories/metadata"
	"github.com/mkuznecov/nutritrack/internal/common"
	"github.com/mkuznecov/nutritrack/internal/cryptox"
)

const saltSize = 16

// TokenCache remembers a session token at rest, AES-GCM encrypted under a
// key derived from a user passphrase. The plaintext token never touches the
// database, only ciphertext, nonce, salt and a key verifier.
type TokenCache struct {
	repo metadata.Repository
}

// NewTokenCache binds a cache to the metadata repository.
func NewTokenCache(repo metadata.Repository) *TokenCache {
	return &TokenCache{repo: repo}
}

// Save encrypts token under passphrase and stores it, replacing any
// previously cached token.
func (c *TokenCache) Save(ctx context.Context, token string, passphrase []byte) error {
	salt := common.GenerateRandByteArray(saltSize)
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := cryptox.EncryptValue(token, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	pairs := map[string][]byte{
		metadata.KeyTokenCipher: ciphertext,
		metadata.KeyTokenNonce:  nonce,
		metadata.KeyTokenSalt:   salt,
		metadata.KeyTokenVerify: cryptox.MakeVerifier(key),
	}
	for k, v := range pairs {
		if err := c.repo.Set(ctx, k, v); err != nil {
			return fmt.Errorf("failed to store token cache: %w", err)
		}
	}
	return nil
}

// Load decrypts the cached token. Returns common.ErrNoStoredSession when
// nothing is cached and common.ErrorUnauthorized on a wrong passphrase.
func (c *TokenCache) Load(ctx context.Context, passphrase []byte) (string, error) {
	ciphertext, err := c.repo.Get(ctx, metadata.KeyTokenCipher)
	if err != nil {
		return "", err
	}
	salt, err := c.repo.Get(ctx, metadata.KeyTokenSalt)
	if err != nil {
		return "", err
	}
	nonce, err := c.repo.Get(ctx, metadata.KeyTokenNonce)
	if err != nil {
		return "", err
	}
	verifier, err := c.repo.Get(ctx, metadata.KeyTokenVerify)
	if err != nil {
		return "", err
	}
	if len(ciphertext) == 0 || len(salt) == 0 || len(nonce) == 0 || len(verifier) == 0 {
		return "", common.ErrNoStoredSession
	}

	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	if subtle.ConstantTimeCompare(cryptox.MakeVerifier(key), verifier) != 1 {
		return "", common.ErrorUnauthorized
	}

	var token string
	if err := cryptox.DecryptValue(ciphertext, nonce, key, &token); err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return token, nil
}

// Clear forgets the cached token.
func (c *TokenCache) Clear(ctx context.Context) error {
	for _, k := range []string{
		metadata.KeyTokenCipher,
		metadata.KeyTokenNonce,
		metadata.KeyTokenSalt,
		metadata.KeyTokenVerify,
	} {
		if err := c.repo.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to clear token cache: %w", err)
		}
	}
	return nil
}
