package recorder

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheets appends rows to a Google Sheet using a service account.
type Sheets struct {
	svc     *sheets.Service
	sheetID string
}

// NewSheets builds the Sheets client once at startup. A credentials or
// client construction failure here disables recording for the whole session.
func NewSheets(ctx context.Context, credentialsFile, sheetID string) (*Sheets, error) {
	opts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Sheets{svc: svc, sheetID: sheetID}, nil
}

func (s *Sheets) Record(ctx context.Context, row Row) error {
	cols := row.columns()
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = c
	}
	vr := &sheets.ValueRange{Values: [][]any{values}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.sheetID, "Sheet1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (s *Sheets) Disabled() string { return "" }
