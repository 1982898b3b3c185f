package notifier

import (
	"BookingBridge/entity"
	"BookingBridge/internal/config"
	"BookingBridge/internal/lib/sl"
	"BookingBridge/internal/service/webhook"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type Spreadsheet interface {
	HasSheet(ctx context.Context, name string) (bool, error)
	LastRow(ctx context.Context, sheet string) (int, error)
	Row(ctx context.Context, sheet string, row int) ([]interface{}, error)
	SetCell(ctx context.Context, sheet string, row, col int, value interface{}) error
}

type Dispatcher interface {
	Post(ctx context.Context, payload interface{}) (*webhook.Delivery, error)
}

type Outcome string

const (
	OutcomeDispatched Outcome = "dispatched"
	OutcomeNoSheet    Outcome = "no_sheet"
	OutcomeEmpty      Outcome = "empty"
	OutcomeFailed     Outcome = "failed"
)

var ErrNoSheet = errors.New("sheet does not exist")

// Result is the outcome of processing one row. Err is set for failed rows and
// for dispatched rows whose status cell could not be written.
type Result struct {
	Outcome  Outcome
	Row      int
	Payload  *entity.BookingPayload
	Delivery *webhook.Delivery
	Marked   bool
	Err      error
}

// Layout holds 0-based column positions of the form-response sheet.
type Layout struct {
	Name          int
	Phone         int
	CustomerCount int
	Room          int
	Date          int
	StartTime     int
	EndTime       int
	Notes         int
	Email         int
}

var DefaultLayout = Layout{
	Name:          1,
	Phone:         2,
	CustomerCount: 3,
	Room:          4,
	Date:          5,
	StartTime:     6,
	EndTime:       7,
	Notes:         8,
	Email:         9,
}

type Notifier struct {
	sheet        Spreadsheet
	dispatcher   Dispatcher
	sheetName    string
	statusText   string
	statusColumn int
	layout       Layout
	log          *slog.Logger
}

func New(conf *config.Config, sheet Spreadsheet, dispatcher Dispatcher, log *slog.Logger) *Notifier {
	return &Notifier{
		sheet:        sheet,
		dispatcher:   dispatcher,
		sheetName:    conf.Notifier.SheetName,
		statusText:   conf.Notifier.StatusText,
		statusColumn: conf.Notifier.StatusColumn,
		layout:       DefaultLayout,
		log:          log.With(sl.Module("notifier"), slog.String("sheet", conf.Notifier.SheetName)),
	}
}

// Notify posts the last row of the sheet to the webhook and marks it pending.
func (n *Notifier) Notify(ctx context.Context) Result {
	last, err := n.LastRow(ctx)
	if err != nil {
		return n.abort(0, err)
	}
	if last == 0 {
		n.log.Info("sheet is empty, nothing to send")
		return Result{Outcome: OutcomeEmpty}
	}
	return n.process(ctx, last)
}

// NotifyRow does the same as Notify for an explicit 1-based row.
func (n *Notifier) NotifyRow(ctx context.Context, row int) Result {
	if row < 1 {
		n.log.With(slog.Int("row", row)).Info("no row to send")
		return Result{Outcome: OutcomeEmpty, Row: row}
	}
	if err := n.checkSheet(ctx); err != nil {
		return n.abort(row, err)
	}
	return n.process(ctx, row)
}

// LastRow returns the last used row, or ErrNoSheet when the sheet is missing.
func (n *Notifier) LastRow(ctx context.Context) (int, error) {
	if err := n.checkSheet(ctx); err != nil {
		return 0, err
	}
	last, err := n.sheet.LastRow(ctx, n.sheetName)
	if err != nil {
		return 0, fmt.Errorf("last row: %w", err)
	}
	return last, nil
}

// MarkStatus writes the pending status into the row. Repeated calls leave the same value.
func (n *Notifier) MarkStatus(ctx context.Context, row int) error {
	if err := n.checkSheet(ctx); err != nil {
		return err
	}
	return n.markStatus(ctx, row)
}

// markStatus assumes the sheet was already resolved by the caller.
func (n *Notifier) markStatus(ctx context.Context, row int) error {
	if err := n.sheet.SetCell(ctx, n.sheetName, row, n.statusColumn, n.statusText); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	n.log.With(
		slog.Int("row", row),
		slog.String("status", n.statusText),
	).Info("initial status set")
	return nil
}

// process sends one row of a sheet that the caller has already resolved.
func (n *Notifier) process(ctx context.Context, row int) (res Result) {
	res.Row = row
	logger := n.log.With(slog.Int("row", row))

	defer func() {
		if r := recover(); r != nil {
			logger.With(slog.Any("panic", r)).Error("process row")
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	values, err := n.sheet.Row(ctx, n.sheetName, row)
	if err != nil {
		logger.With(sl.Err(err)).Error("read row")
		return n.fail(res, err)
	}
	logger.With(slog.Any("values", values)).Debug("raw row")

	payload, err := n.Payload(values, row)
	if err != nil {
		logger.With(sl.Err(err)).Error("build payload")
		return n.fail(res, err)
	}
	res.Payload = payload

	delivery, err := n.dispatcher.Post(ctx, payload)
	if err != nil {
		logger.With(sl.Err(err)).Error("send webhook")
		return n.fail(res, err)
	}
	res.Outcome = OutcomeDispatched
	res.Delivery = delivery

	if err = n.markStatus(ctx, row); err != nil {
		logger.With(sl.Err(err)).Error("set initial status")
		res.Err = err
		return res
	}
	res.Marked = true
	return res
}

// Payload maps raw row values onto the webhook body.
func (n *Notifier) Payload(values []interface{}, row int) (*entity.BookingPayload, error) {
	cell := func(i int) interface{} {
		if i < 0 || i >= len(values) {
			return nil
		}
		return values[i]
	}

	startTime, err := FormatClock(cell(n.layout.StartTime))
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endTime, err := FormatClock(cell(n.layout.EndTime))
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}

	return &entity.BookingPayload{
		Name:          text(cell(n.layout.Name), PlaceholderName),
		Phone:         text(cell(n.layout.Phone), PlaceholderPhone),
		CustomerCount: count(cell(n.layout.CustomerCount), PlaceholderCustomerCount),
		Room:          text(cell(n.layout.Room), PlaceholderRoom),
		Date:          FormatDate(cell(n.layout.Date)),
		StartTime:     startTime,
		EndTime:       endTime,
		Notes:         text(cell(n.layout.Notes), PlaceholderNotes),
		Email:         text(cell(n.layout.Email), ""),
		RowNumber:     row,
	}, nil
}

func (n *Notifier) checkSheet(ctx context.Context) error {
	ok, err := n.sheet.HasSheet(ctx, n.sheetName)
	if err != nil {
		return fmt.Errorf("lookup sheet: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSheet, n.sheetName)
	}
	return nil
}

func (n *Notifier) abort(row int, err error) Result {
	if errors.Is(err, ErrNoSheet) {
		n.log.Warn("sheet does not exist, check the sheet name")
		return Result{Outcome: OutcomeNoSheet, Row: row, Err: err}
	}
	n.log.With(sl.Err(err)).Error("resolve sheet")
	return Result{Outcome: OutcomeFailed, Row: row, Err: err}
}

func (n *Notifier) fail(res Result, err error) Result {
	res.Outcome = OutcomeFailed
	res.Err = err
	return res
}
