package spreadsheet

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const testSpreadsheetID = "sheet-123"

// fakeSheetsAPI serves the subset of the Sheets v4 REST API the service uses.
type fakeSheetsAPI struct {
	mu          sync.Mutex
	rows        map[string][][]interface{}
	writes      map[string][][]interface{}
	renderModes []string
	lookups     int
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := "/v4/spreadsheets/" + testSpreadsheetID
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == base:
		f.lookups++
		var sheets []map[string]interface{}
		for title := range f.rows {
			sheets = append(sheets, map[string]interface{}{
				"properties": map[string]interface{}{"title": title},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sheets": sheets})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, base+"/values/"):
		rng := strings.TrimPrefix(r.URL.Path, base+"/values/")
		f.renderModes = append(f.renderModes, r.URL.Query().Get("valueRenderOption"))
		sheet, rows := f.lookup(rng)
		resp := map[string]interface{}{"range": rng, "majorDimension": "ROWS"}
		data := f.rows[sheet]
		if rows == 0 {
			if len(data) > 0 {
				resp["values"] = data
			}
		} else if rows <= len(data) {
			resp["values"] = [][]interface{}{data[rows-1]}
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, base+"/values/"):
		rng := strings.TrimPrefix(r.URL.Path, base+"/values/")
		body, _ := io.ReadAll(r.Body)
		var vr struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.Unmarshal(body, &vr)
		f.writes[rng] = vr.Values
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"updatedRange": rng, "updatedCells": 1})

	default:
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}
}

// lookup splits "'Form1'!3:3" into ("Form1", 3); a bare sheet range returns row 0.
func (f *fakeSheetsAPI) lookup(rng string) (string, int) {
	sheet, cells, _ := strings.Cut(rng, "!")
	sheet = strings.Trim(sheet, "'")
	if cells == "" {
		return sheet, 0
	}
	first, _, _ := strings.Cut(cells, ":")
	n, _ := strconv.Atoi(first)
	return sheet, n
}

func newTestService(t *testing.T, api *fakeSheetsAPI) *Service {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	svc, err := New(context.Background(), testSpreadsheetID, slog.New(slog.NewTextHandler(io.Discard, nil)),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc
}

func TestService_HasSheet(t *testing.T) {
	api := &fakeSheetsAPI{
		rows:   map[string][][]interface{}{"Form1": nil},
		writes: map[string][][]interface{}{},
	}
	svc := newTestService(t, api)

	ok, err := svc.HasSheet(context.Background(), "Form1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasSheet(context.Background(), "Bookings")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_LastRowAndRow(t *testing.T) {
	api := &fakeSheetsAPI{
		rows: map[string][][]interface{}{
			"Form1": {
				{"Timestamp", "Name"},
				{45294.5, "An", "0912345678", 4.0, "VIP 1", 45294.0, 0.375, 0.4166666666666667, "", "an@example.com"},
			},
		},
		writes: map[string][][]interface{}{},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	last, err := svc.LastRow(ctx, "Form1")
	require.NoError(t, err)
	assert.Equal(t, 2, last)

	row, err := svc.Row(ctx, "Form1", last)
	require.NoError(t, err)
	require.Len(t, row, 10)
	assert.Equal(t, "An", row[1])
	assert.Equal(t, 45294.0, row[5])
	assert.Equal(t, 0.375, row[6])
	assert.Contains(t, api.renderModes, "UNFORMATTED_VALUE")

	row, err = svc.Row(ctx, "Form1", 7)
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestService_ReadWriteSkipSheetLookup(t *testing.T) {
	api := &fakeSheetsAPI{
		rows:   map[string][][]interface{}{"Form1": {{"a"}, {"b"}}},
		writes: map[string][][]interface{}{},
	}
	svc := newTestService(t, api)
	ctx := context.Background()

	last, err := svc.LastRow(ctx, "Form1")
	require.NoError(t, err)
	_, err = svc.Row(ctx, "Form1", last)
	require.NoError(t, err)
	require.NoError(t, svc.SetCell(ctx, "Form1", last, 11, "x"))

	assert.Zero(t, api.lookups)
}

func TestService_SetCell(t *testing.T) {
	api := &fakeSheetsAPI{
		rows:   map[string][][]interface{}{"Form1": {{"a"}, {"b"}}},
		writes: map[string][][]interface{}{},
	}
	svc := newTestService(t, api)

	require.NoError(t, svc.SetCell(context.Background(), "Form1", 2, 11, "Chờ xử lý"))
	require.Contains(t, api.writes, "'Form1'!K2")
	assert.Equal(t, [][]interface{}{{"Chờ xử lý"}}, api.writes["'Form1'!K2"])
}

func TestColumnName(t *testing.T) {
	tests := map[int]string{1: "A", 11: "K", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 703: "AAA"}
	for col, want := range tests {
		assert.Equal(t, want, ColumnName(col), "column %d", col)
	}
}
