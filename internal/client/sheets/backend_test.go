package sheets

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/mkuznecov/nutritrack/internal/logging"
	"github.com/stretchr/testify/require"
)

const testToken = "test-bearer-token"

// fakeBackend emulates just enough of the Sheets and Drive value APIs for the
// sync engine: spreadsheet creation, search by name, batchGet, range
// overwrite and range clear. Rows are stored per sheet with index 0 holding
// spreadsheet row 1 (the header).
type fakeBackend struct {
	t *testing.T

	mu           sync.Mutex
	spreadsheets map[string]*fakeSpreadsheet
	created      int
	clearCalls   []string

	// failPath injects an error response for any request whose path
	// contains the substring.
	failPath    string
	failStatus  int
	failMessage string
}

type fakeSpreadsheet struct {
	title  string
	sheets map[string][][]any
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{t: t, spreadsheets: make(map[string]*fakeSpreadsheet)}
	ts := httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(ts.Close)
	return b, ts
}

var rangeRe = regexp.MustCompile(`^([A-Za-z]+)!([A-Z]+)(\d+)(?::([A-Z]+)(\d+)?)?$`)

// parseRange returns the sheet name, the 1-based start row and the 1-based
// end row (0 when the range is open-ended).
func parseRange(t *testing.T, tableRange string) (sheet string, start, end int) {
	t.Helper()
	m := rangeRe.FindStringSubmatch(tableRange)
	require.NotNil(t, m, "unparsable range %q", tableRange)
	start, err := strconv.Atoi(m[3])
	require.NoError(t, err)
	if m[5] != "" {
		end, err = strconv.Atoi(m[5])
		require.NoError(t, err)
	}
	return m[1], start, end
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
		writeAPIError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}
	if b.failPath != "" && strings.Contains(r.URL.Path, b.failPath) {
		writeAPIError(w, b.failStatus, b.failMessage)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/drive"):
		b.handleSearch(w, r)
	case path == "/sheets" && r.Method == http.MethodPost:
		b.handleCreate(w, r)
	case strings.HasSuffix(path, "/values:batchGet"):
		b.handleBatchGet(w, r)
	case strings.Contains(path, "/values/") && strings.HasSuffix(path, ":clear"):
		b.handleClear(w, r)
	case strings.Contains(path, "/values/") && r.Method == http.MethodPut:
		b.handleWrite(w, r)
	default:
		writeAPIError(w, http.StatusNotFound, "unknown endpoint "+path)
	}
}

var nameQueryRe = regexp.MustCompile(`name = '([^']*)'`)

func (b *fakeBackend) handleSearch(w http.ResponseWriter, r *http.Request) {
	m := nameQueryRe.FindStringSubmatch(r.URL.Query().Get("q"))
	require.NotNil(b.t, m, "drive query missing name clause")

	type file struct {
		ID string `json:"id"`
	}
	var files []file
	for id, ss := range b.spreadsheets {
		if ss.title == m[1] {
			files = append(files, file{ID: id})
		}
	}
	writeJSON(w, map[string]any{"files": files})
}

func (b *fakeBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))

	id := fmt.Sprintf("sheet-%d", b.created)
	b.created++
	ss := &fakeSpreadsheet{title: body.Properties.Title, sheets: make(map[string][][]any)}
	for _, s := range body.Sheets {
		ss.sheets[s.Properties.Title] = nil
	}
	b.spreadsheets[id] = ss
	writeJSON(w, map[string]any{"spreadsheetId": id})
}

func (b *fakeBackend) spreadsheetFor(path string) *fakeSpreadsheet {
	rest := strings.TrimPrefix(path, "/sheets/")
	id := strings.SplitN(rest, "/", 2)[0]
	ss := b.spreadsheets[id]
	require.NotNil(b.t, ss, "unknown spreadsheet %q", id)
	return ss
}

func (b *fakeBackend) handleBatchGet(w http.ResponseWriter, r *http.Request) {
	ss := b.spreadsheetFor(r.URL.Path)

	type valueRange struct {
		Values [][]any `json:"values,omitempty"`
	}
	var out []valueRange
	for _, rng := range r.URL.Query()["ranges"] {
		sheet, start, end := parseRange(b.t, rng)
		rows := ss.sheets[sheet]
		var values [][]any
		for i := start - 1; i < len(rows); i++ {
			if end > 0 && i > end-1 {
				break
			}
			values = append(values, rows[i])
		}
		out = append(out, valueRange{Values: values})
	}
	writeJSON(w, map[string]any{"valueRanges": out})
}

func (b *fakeBackend) handleClear(w http.ResponseWriter, r *http.Request) {
	rawRange := strings.TrimSuffix(r.URL.Path[strings.Index(r.URL.Path, "/values/")+len("/values/"):], ":clear")
	b.clearCalls = append(b.clearCalls, rawRange)

	ss := b.spreadsheetFor(r.URL.Path)
	sheet, start, _ := parseRange(b.t, rawRange)
	if rows := ss.sheets[sheet]; len(rows) >= start {
		ss.sheets[sheet] = rows[:start-1]
	}
	writeJSON(w, map[string]any{})
}

func (b *fakeBackend) handleWrite(w http.ResponseWriter, r *http.Request) {
	require.Equal(b.t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))

	rawRange := r.URL.Path[strings.Index(r.URL.Path, "/values/")+len("/values/"):]
	ss := b.spreadsheetFor(r.URL.Path)
	sheet, start, _ := parseRange(b.t, rawRange)

	var body struct {
		Values [][]any `json:"values"`
	}
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))

	rows := ss.sheets[sheet]
	for i, row := range body.Values {
		idx := start - 1 + i
		for len(rows) <= idx {
			rows = append(rows, nil)
		}
		rows[idx] = row
	}
	ss.sheets[sheet] = rows
	writeJSON(w, map[string]any{})
}

// dataRows returns the rows of one sheet below the header.
func (b *fakeBackend) dataRows(spreadsheetID, sheet string) [][]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.spreadsheets[spreadsheetID].sheets[sheet]
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": message},
	})
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestService(t *testing.T) (*fakeBackend, *Service) {
	t.Helper()
	backend, ts := newFakeBackend(t)
	c := NewClient(testToken, ts.Client())
	c.SheetsBaseURL = ts.URL + "/sheets"
	c.DriveBaseURL = ts.URL + "/drive"
	return backend, NewService(c, "NutriTrack AI Data", discardLogger())
}
