package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkuznecov/nutritrack/internal/common"
)

// Scopes requested for the spreadsheet backend: full Sheets access plus
// Drive search/create for locating the store.
const backendScopes = "https://www.googleapis.com/auth/spreadsheets https://www.googleapis.com/auth/drive"

// refreshMargin is how long before expiry a cached token is considered stale.
const refreshMargin = time.Minute

// serviceAccountKey is the subset of the Google service-account JSON key
// file the client needs.
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ServiceAccount is a Provider that signs a JWT assertion with the service
// account's private key and exchanges it for an access token at the OAuth
// token endpoint. Tokens are cached until shortly before expiry.
type ServiceAccount struct {
	email      string
	key        *rsa.PrivateKey
	tokenURI   string
	httpClient *http.Client
	now        func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewServiceAccount parses a service-account JSON key file's contents.
func NewServiceAccount(keyJSON []byte, httpClient *http.Client) (*ServiceAccount, error) {
	var k serviceAccountKey
	if err := json.Unmarshal(keyJSON, &k); err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	if k.ClientEmail == "" || k.PrivateKey == "" || k.TokenURI == "" {
		return nil, fmt.Errorf("service account key is missing client_email, private_key or token_uri")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(k.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account private key: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ServiceAccount{
		email:      k.ClientEmail,
		key:        key,
		tokenURI:   k.TokenURI,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// LoadServiceAccount reads and parses a service-account key file from disk.
func LoadServiceAccount(path string, httpClient *http.Client) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key file: %w", err)
	}
	return NewServiceAccount(data, httpClient)
}

// Token returns a cached access token, refreshing it when stale.
func (s *ServiceAccount) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expiry.Add(-refreshMargin)) {
		return s.token, nil
	}

	token, expiresIn, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expiry = s.now().Add(time.Duration(expiresIn) * time.Second)
	return token, nil
}

func (s *ServiceAccount) exchange(ctx context.Context) (string, int, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.email,
		"scope": backendScopes,
		"aud":   s.tokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var oauthErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.Unmarshal(body, &oauthErr)
		switch oauthErr.Error {
		case "access_denied":
			return "", 0, fmt.Errorf("%s: %w", oauthErr.ErrorDescription, common.ErrConsentDenied)
		case "invalid_grant":
			return "", 0, fmt.Errorf("%s: %w", oauthErr.ErrorDescription, common.ErrInvalidToken)
		}
		return "", 0, fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", 0, fmt.Errorf("token response carried no access token: %w", common.ErrInvalidToken)
	}
	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}
