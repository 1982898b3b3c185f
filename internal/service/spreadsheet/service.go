package spreadsheet

import (
	"BookingBridge/internal/config"
	"BookingBridge/internal/lib/sl"
	"context"
	"fmt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"log/slog"
	"strings"
)

const (
	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "SERIAL_NUMBER"
	inputRaw       = "RAW"
)

// Service reads and writes cells of one Google spreadsheet.
// Dates and times come back as spreadsheet serial numbers.
type Service struct {
	api           *sheets.Service
	spreadsheetID string
	log           *slog.Logger
}

func NewSpreadsheetService(ctx context.Context, conf *config.Config, log *slog.Logger) (*Service, error) {
	if conf.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id not configured")
	}
	return New(ctx, conf.Sheets.SpreadsheetID, log,
		option.WithCredentialsFile(conf.Sheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func New(ctx context.Context, spreadsheetID string, log *slog.Logger, opts ...option.ClientOption) (*Service, error) {
	api, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &Service{
		api:           api,
		spreadsheetID: spreadsheetID,
		log:           log.With(sl.Module("spreadsheet")),
	}, nil
}

func (s *Service) HasSheet(ctx context.Context, name string) (bool, error) {
	resp, err := s.api.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return true, nil
		}
	}
	return false, nil
}

// LastRow returns the 1-based index of the last non-empty row, 0 for an empty sheet.
// The sheet is expected to exist; see HasSheet.
func (s *Service) LastRow(ctx context.Context, sheet string) (int, error) {
	resp, err := s.api.Spreadsheets.Values.Get(s.spreadsheetID, quote(sheet)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return len(resp.Values), nil
}

func (s *Service) Row(ctx context.Context, sheet string, row int) ([]interface{}, error) {
	if row < 1 {
		return nil, fmt.Errorf("invalid row %d", row)
	}
	rng := fmt.Sprintf("%s!%d:%d", quote(sheet), row, row)
	resp, err := s.api.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension("ROWS").
		ValueRenderOption(valueRender).
		DateTimeRenderOption(dateTimeRender).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read row %d: %w", row, err)
	}
	if len(resp.Values) == 0 {
		return []interface{}{}, nil
	}
	return resp.Values[0], nil
}

// SetCell writes value into the 1-based (row, col) cell without any parsing.
func (s *Service) SetCell(ctx context.Context, sheet string, row, col int, value interface{}) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d:%d", row, col)
	}
	rng := fmt.Sprintf("%s!%s%d", quote(sheet), ColumnName(col), row)
	_, err := s.api.Spreadsheets.Values.Update(s.spreadsheetID, rng, &sheets.ValueRange{
		Range:  rng,
		Values: [][]interface{}{{value}},
	}).
		ValueInputOption(inputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	s.log.With(
		slog.String("range", rng),
	).Debug("cell updated")
	return nil
}

// ColumnName converts a 1-based column index to A1 letters: 1 -> A, 11 -> K, 28 -> AB.
func ColumnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

func quote(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
