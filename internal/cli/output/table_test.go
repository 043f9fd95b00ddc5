package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

type stockRow struct {
	ID        int64     `json:"id"`
	Quantity  int64     `json:"quantity"`
	Warehouse string    `json:"warehouse" table:"wide"`
	UpdatedAt time.Time `json:"updated_at" table:"-"`
	note      string    //nolint:unused
}

func renderToString(t *testing.T, f *TableFormatter, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestFormatPrebuiltTable(t *testing.T) {
	table := &Table{
		Headers: []string{"PRODUCT ID", "QUANTITY"},
		Rows:    [][]string{{"1", "120"}, {"2", "0"}},
	}

	got := renderToString(t, &TableFormatter{}, table)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, want 3:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "PRODUCT ID") {
		t.Errorf("first line should be the header row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "2") {
		t.Errorf("rows should render in order, got %q", lines[2])
	}
}

func TestFormatTableValueNotPointer(t *testing.T) {
	table := Table{Headers: []string{"A"}, Rows: [][]string{{"x"}}}
	got := renderToString(t, &TableFormatter{}, table)
	if !strings.Contains(got, "x") {
		t.Errorf("value Table did not render:\n%s", got)
	}
}

func TestFormatNilWritesNothing(t *testing.T) {
	got := renderToString(t, &TableFormatter{}, nil)
	if got != "" {
		t.Errorf("nil data produced output %q", got)
	}
}

func TestFormatStructSlice(t *testing.T) {
	rows := []stockRow{
		{ID: 1, Quantity: 120, Warehouse: "east"},
		{ID: 2, Quantity: 0, Warehouse: "west"},
	}

	got := renderToString(t, &TableFormatter{}, rows)

	if !strings.Contains(got, "ID") || !strings.Contains(got, "QUANTITY") {
		t.Errorf("missing derived headers:\n%s", got)
	}
	if strings.Contains(got, "WAREHOUSE") {
		t.Errorf("wide column rendered without Wide:\n%s", got)
	}
	if strings.Contains(got, "UPDATED_AT") {
		t.Errorf("table:\"-\" column rendered:\n%s", got)
	}
	if !strings.Contains(got, "120") {
		t.Errorf("missing row value:\n%s", got)
	}
}

func TestFormatStructSliceWide(t *testing.T) {
	rows := []stockRow{{ID: 1, Quantity: 5, Warehouse: "east"}}

	got := renderToString(t, &TableFormatter{Wide: true}, rows)

	if !strings.Contains(got, "WAREHOUSE") || !strings.Contains(got, "east") {
		t.Errorf("wide mode should reveal the warehouse column:\n%s", got)
	}
}

func TestFormatPointerSlice(t *testing.T) {
	rows := []*stockRow{{ID: 3, Quantity: 9}}

	got := renderToString(t, &TableFormatter{}, rows)

	if !strings.Contains(got, "3") || !strings.Contains(got, "9") {
		t.Errorf("pointer elements did not render:\n%s", got)
	}
}

func TestFormatEmptySlice(t *testing.T) {
	got := renderToString(t, &TableFormatter{}, []stockRow{})
	if got != "" {
		t.Errorf("empty slice produced output %q", got)
	}
}

func TestFormatScalarSlice(t *testing.T) {
	got := renderToString(t, &TableFormatter{}, []int{4, 8})

	if !strings.Contains(got, "VALUE") {
		t.Errorf("scalar slice should get a VALUE header:\n%s", got)
	}
	if !strings.Contains(got, "4") || !strings.Contains(got, "8") {
		t.Errorf("scalar values missing:\n%s", got)
	}
}

func TestFormatSingleStruct(t *testing.T) {
	row := stockRow{ID: 7, Quantity: 40}

	got := renderToString(t, &TableFormatter{}, row)

	if !strings.Contains(got, "FIELD") || !strings.Contains(got, "VALUE") {
		t.Errorf("single struct should render FIELD/VALUE:\n%s", got)
	}
	if !strings.Contains(got, "id") || !strings.Contains(got, "quantity") {
		t.Errorf("json tag names should label the rows:\n%s", got)
	}
	if strings.Contains(got, "note") {
		t.Errorf("unexported field leaked:\n%s", got)
	}
}

func TestFormatMapSortsKeys(t *testing.T) {
	data := map[string]any{
		"storage.file":     "/data/inventory.json",
		"server.http.addr": ":3002",
		"log.level":        "info",
	}

	got := renderToString(t, &TableFormatter{}, data)

	logIdx := strings.Index(got, "log.level")
	serverIdx := strings.Index(got, "server.http.addr")
	storageIdx := strings.Index(got, "storage.file")
	if logIdx < 0 || serverIdx < 0 || storageIdx < 0 {
		t.Fatalf("missing keys:\n%s", got)
	}
	if !(logIdx < serverIdx && serverIdx < storageIdx) {
		t.Errorf("map rows should sort by key:\n%s", got)
	}
}

func TestFormatUnsupportedFallsBackToJSON(t *testing.T) {
	got := renderToString(t, &TableFormatter{}, "plain string")
	if !strings.Contains(got, `"plain string"`) {
		t.Errorf("scalar should fall back to JSON:\n%s", got)
	}
}

func TestCellValues(t *testing.T) {
	when := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	qty := int64(12)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "east", "east"},
		{"empty string", "", "-"},
		{"int", 42, "42"},
		{"negative int", -3, "-3"},
		{"uint", uint(7), "7"},
		{"float", 99.456, "99.46"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"time", when, "2026-08-25 14:30"},
		{"zero time", time.Time{}, "-"},
		{"nil pointer", (*int64)(nil), ""},
		{"pointer", &qty, "12"},
		{"empty slice", []string{}, "-"},
		{"slice", []string{"a", "b"}, "[2 items]"},
		{"empty map", map[string]int{}, "-"},
		{"map", map[string]int{"a": 1}, "{1 keys}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cell(reflect.ValueOf(tt.in)); got != tt.want {
				t.Errorf("cell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUpperSnake(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Quantity", "QUANTITY"},
		{"updated_at", "UPDATED_AT"},
		{"ProductID", "PRODUCT_I_D"},
		{"id", "ID"},
	}
	for _, tt := range tests {
		if got := upperSnake(tt.in); got != tt.want {
			t.Errorf("upperSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderAlignsColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "QUANTITY"},
		Rows:    [][]string{{"1", "5"}, {"1000", "99999"}},
	}

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	qCol := strings.Index(lines[0], "QUANTITY")
	if qCol <= 0 {
		t.Fatalf("header misrendered: %q", lines[0])
	}
	if strings.Index(lines[1], "5") != qCol {
		t.Errorf("short row not aligned to header column:\n%s", buf.String())
	}
}

func TestRenderHeaderlessTable(t *testing.T) {
	table := &Table{Rows: [][]string{{"only", "row"}}}

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 1 {
		t.Errorf("headerless table rendered %d lines, want 1", lines)
	}
}
