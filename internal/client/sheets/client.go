// Package sheets implements the spreadsheet-backed persistence layer: a thin
// authenticated client for the Sheets and Drive REST APIs, the fixed table
// schemas, find-or-create binding of the backing spreadsheet, and the
// full-overwrite sync engine for the three record collections.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	defaultDriveBaseURL  = "https://www.googleapis.com/drive/v3/files"
)

// APIError is a non-2xx backend response. Message carries the backend's own
// error message when the body contained one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client issues authenticated JSON requests against the Sheets and Drive
// APIs. It holds the bearer token and nothing else; all session state lives
// in the Service that owns it.
type Client struct {
	token      string
	httpClient *http.Client

	// Base URLs are overridable for tests.
	SheetsBaseURL string
	DriveBaseURL  string
}

// NewClient returns a Client authenticated with the given bearer token.
// A nil httpClient selects a default with a 15s timeout.
func NewClient(token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		token:         token,
		httpClient:    httpClient,
		SheetsBaseURL: defaultSheetsBaseURL,
		DriveBaseURL:  defaultDriveBaseURL,
	}
}

// request performs one JSON round trip. Any non-2xx status is converted into
// an *APIError carrying the backend message when present.
func (c *Client) request(ctx context.Context, method, rawURL string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	return respBody, nil
}

// errorMessage extracts the message from a Google error body, falling back
// to a generic message.
func errorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return "API request failed"
}

// FindSpreadsheet searches Drive for a non-trashed spreadsheet with exactly
// the given title. When several exist the first match wins.
func (c *Client) FindSpreadsheet(ctx context.Context, title string) (string, bool, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", title)
	rawURL := c.DriveBaseURL + "?q=" + url.QueryEscape(query)

	body, err := c.request(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, err
	}

	var parsed struct {
		Files []struct {
			ID string `json:"id"`
		} `json:"files"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("decode drive search response: %w", err)
	}
	if len(parsed.Files) == 0 {
		return "", false, nil
	}
	return parsed.Files[0].ID, true, nil
}

// CreateSpreadsheet creates a spreadsheet with one sheet per name and
// returns its identifier.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetTitles []string) (string, error) {
	type sheetProps struct {
		Title string `json:"title"`
	}
	type sheet struct {
		Properties sheetProps `json:"properties"`
	}
	reqBody := struct {
		Properties sheetProps `json:"properties"`
		Sheets     []sheet    `json:"sheets"`
	}{Properties: sheetProps{Title: title}}
	for _, name := range sheetTitles {
		reqBody.Sheets = append(reqBody.Sheets, sheet{Properties: sheetProps{Title: name}})
	}

	body, err := c.request(ctx, http.MethodPost, c.SheetsBaseURL, reqBody)
	if err != nil {
		return "", err
	}

	var parsed struct {
		SpreadsheetID string `json:"spreadsheetId"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return parsed.SpreadsheetID, nil
}

// BatchGet fetches several ranges in one round trip. The returned slices are
// positional: result[i] holds the rows of ranges[i], nil when the range is
// empty.
func (c *Client) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([][][]any, error) {
	params := url.Values{}
	for _, r := range ranges {
		params.Add("ranges", r)
	}
	rawURL := fmt.Sprintf("%s/%s/values:batchGet?%s", c.SheetsBaseURL, spreadsheetID, params.Encode())

	body, err := c.request(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ValueRanges []struct {
			Values [][]any `json:"values"`
		} `json:"valueRanges"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode batchGet response: %w", err)
	}
	if len(parsed.ValueRanges) != len(ranges) {
		return nil, fmt.Errorf("expected %d value ranges, got %d", len(ranges), len(parsed.ValueRanges))
	}

	result := make([][][]any, len(ranges))
	for i, vr := range parsed.ValueRanges {
		result[i] = vr.Values
	}
	return result, nil
}

// WriteRange overwrites the given range with rows. USER_ENTERED input lets
// the backend coerce numbers and dates from the raw cell values. Overwrite
// alone cannot shrink a table; pair with ClearRange when the new row set may
// be shorter.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, tableRange string, rows [][]any) error {
	rawURL := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED", c.SheetsBaseURL, spreadsheetID, tableRange)
	_, err := c.request(ctx, http.MethodPut, rawURL, map[string]any{"values": rows})
	return err
}

// ClearRange empties a rectangular region. Needed before a shorter overwrite
// so stale trailing rows do not survive.
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, tableRange string) error {
	rawURL := fmt.Sprintf("%s/%s/values/%s:clear", c.SheetsBaseURL, spreadsheetID, tableRange)
	_, err := c.request(ctx, http.MethodPost, rawURL, nil)
	return err
}
