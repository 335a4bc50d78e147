package sheets

import (
	"context"
	"fmt"

	"github.com/mkuznecov/nutritrack/internal/logging"
)

// Service binds the three record tables of one backing spreadsheet for one
// authenticated account. It is created per session and discarded on logout.
type Service struct {
	client *Client
	title  string
	log    logging.Logger

	spreadsheetID string
}

// NewService returns an unbound Service; call Init before any load or save.
func NewService(client *Client, title string, log logging.Logger) *Service {
	return &Service{client: client, title: title, log: log}
}

// Init idempotently finds or creates the backing spreadsheet and reports
// whether a new one was provisioned. When several spreadsheets share the
// title (a concurrent first login can create duplicates) the first match
// wins on every subsequent locate.
func (s *Service) Init(ctx context.Context) (created bool, err error) {
	id, found, err := s.client.FindSpreadsheet(ctx, s.title)
	if err != nil {
		return false, fmt.Errorf("locate spreadsheet: %w", err)
	}
	if found {
		s.spreadsheetID = id
		s.log.Info(ctx, "bound existing spreadsheet", "title", s.title)
		return false, nil
	}

	if err := s.provision(ctx); err != nil {
		return false, err
	}
	s.log.Info(ctx, "provisioned new spreadsheet", "title", s.title)
	return true, nil
}

// provision creates the spreadsheet with the three named tables and writes
// each header row. Must run at most once per store lifetime; re-running it
// would create a duplicate store.
func (s *Service) provision(ctx context.Context) error {
	id, err := s.client.CreateSpreadsheet(ctx, s.title, sheetNames())
	if err != nil {
		return fmt.Errorf("create spreadsheet: %w", err)
	}
	s.spreadsheetID = id

	headers := []struct {
		tableRange string
		row        []any
	}{
		{profileHeaderRange, profileHeaders},
		{logsHeaderRange, logsHeaders},
		{weightHeaderRange, weightHeaders},
	}
	for _, h := range headers {
		if err := s.client.WriteRange(ctx, s.spreadsheetID, h.tableRange, [][]any{h.row}); err != nil {
			return fmt.Errorf("write header %s: %w", h.tableRange, err)
		}
	}
	return nil
}

// Bound reports whether Init has bound a spreadsheet.
func (s *Service) Bound() bool {
	return s.spreadsheetID != ""
}
