package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkuznecov/nutritrack/internal/common"
	"github.com/stretchr/testify/require"
)

func generateKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return key, string(block)
}

type tokenEndpoint struct {
	key        *rsa.PrivateKey
	calls      int
	status     int
	oauthError string
	expiresIn  int

	lastAssertion string
}

func (e *tokenEndpoint) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e.calls++
		require.NoError(t, r.ParseForm())
		require.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.FormValue("grant_type"))
		e.lastAssertion = r.FormValue("assertion")

		w.Header().Set("Content-Type", "application/json")
		if e.status != 0 && e.status != http.StatusOK {
			w.WriteHeader(e.status)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             e.oauthError,
				"error_description": "backend said no",
			})
			return
		}
		expiresIn := e.expiresIn
		if expiresIn == 0 {
			expiresIn = 3600
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-token-1",
			"expires_in":   expiresIn,
			"token_type":   "Bearer",
		})
	}
}

func newTestAccount(t *testing.T, e *tokenEndpoint) *ServiceAccount {
	t.Helper()
	key, pemStr := generateKeyPEM(t)
	e.key = key

	ts := httptest.NewServer(e.handler(t))
	t.Cleanup(ts.Close)

	keyJSON, err := json.Marshal(map[string]string{
		"client_email": "tracker@project.iam.gserviceaccount.com",
		"private_key":  pemStr,
		"token_uri":    ts.URL,
	})
	require.NoError(t, err)

	sa, err := NewServiceAccount(keyJSON, ts.Client())
	require.NoError(t, err)
	return sa
}

func TestServiceAccount_TokenExchange(t *testing.T) {
	endpoint := &tokenEndpoint{}
	sa := newTestAccount(t, endpoint)

	token, err := sa.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-token-1", token)

	// the assertion must be RS256-signed by the account key and carry the
	// expected claims
	parsed, err := jwt.Parse(endpoint.lastAssertion, func(tok *jwt.Token) (any, error) {
		require.Equal(t, "RS256", tok.Method.Alg())
		return &endpoint.key.PublicKey, nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "tracker@project.iam.gserviceaccount.com", claims["iss"])
	require.Equal(t, backendScopes, claims["scope"])
	require.Equal(t, sa.tokenURI, claims["aud"])
}

func TestServiceAccount_CachesUntilExpiry(t *testing.T) {
	endpoint := &tokenEndpoint{}
	sa := newTestAccount(t, endpoint)

	now := time.Now()
	sa.now = func() time.Time { return now }

	_, err := sa.Token(context.Background())
	require.NoError(t, err)
	_, err = sa.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, endpoint.calls)

	// a minute before the one-hour expiry the token counts as stale
	now = now.Add(time.Hour - refreshMargin)
	_, err = sa.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, endpoint.calls)
}

func TestServiceAccount_ConsentDenied(t *testing.T) {
	endpoint := &tokenEndpoint{status: http.StatusUnauthorized, oauthError: "access_denied"}
	sa := newTestAccount(t, endpoint)

	_, err := sa.Token(context.Background())
	require.ErrorIs(t, err, common.ErrConsentDenied)
}

func TestServiceAccount_InvalidGrant(t *testing.T) {
	endpoint := &tokenEndpoint{status: http.StatusBadRequest, oauthError: "invalid_grant"}
	sa := newTestAccount(t, endpoint)

	_, err := sa.Token(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestNewServiceAccount_RejectsIncompleteKey(t *testing.T) {
	_, err := NewServiceAccount([]byte(`{"client_email":"a@b.c"}`), nil)
	require.Error(t, err)

	_, err = NewServiceAccount([]byte(`not json`), nil)
	require.Error(t, err)
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("pasted-token").Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "pasted-token", token)
}
