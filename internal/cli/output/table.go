package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// Table is tabular data ready to render. Commands either build one by
// hand or let TableFormatter derive one from a struct or slice.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table through a tabwriter so columns line up.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// TableFormatter renders arbitrary result values as a table. Wide
// includes columns tagged `table:"wide"` that are hidden by default.
type TableFormatter struct {
	Wide bool
}

// Format renders data as a table. Structs become FIELD/VALUE rows,
// slices of structs become one row per element, and maps become
// KEY/VALUE rows sorted by key. Values no table can hold fall back to
// indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch t := data.(type) {
	case nil:
		return nil
	case *Table:
		return t.Render(w)
	case Table:
		return t.Render(w)
	}

	table, ok := f.derive(reflect.Indirect(reflect.ValueOf(data)))
	if !ok {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return table.Render(w)
}

func (f *TableFormatter) derive(v reflect.Value) (*Table, bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return f.sliceTable(v)
	case reflect.Map:
		return keyValueTable("KEY", v)
	case reflect.Struct:
		return f.structTable(v), true
	default:
		return nil, false
	}
}

// column is one renderable struct field.
type column struct {
	index  int
	header string
}

// columnsOf lists the renderable fields of a struct type. Fields
// tagged `table:"-"` never render; fields tagged `table:"wide"` only
// render in wide mode.
func (f *TableFormatter) columnsOf(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		switch tag := field.Tag.Get("table"); {
		case tag == "-":
			continue
		case strings.Contains(tag, "wide") && !f.Wide:
			continue
		}
		cols = append(cols, column{index: i, header: headerFor(field)})
	}
	return cols
}

func (f *TableFormatter) sliceTable(v reflect.Value) (*Table, bool) {
	if v.Len() == 0 {
		return &Table{}, true
	}

	first := unwrap(v.Index(0))
	if first.Kind() != reflect.Struct {
		table := &Table{Headers: []string{"VALUE"}}
		for i := 0; i < v.Len(); i++ {
			table.Rows = append(table.Rows, []string{cell(v.Index(i))})
		}
		return table, true
	}

	cols := f.columnsOf(first.Type())
	table := &Table{}
	for _, c := range cols {
		table.Headers = append(table.Headers, c.header)
	}
	for i := 0; i < v.Len(); i++ {
		elem := unwrap(v.Index(i))
		if elem.Kind() != reflect.Struct {
			table.Rows = append(table.Rows, []string{cell(v.Index(i))})
			continue
		}
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, cell(elem.Field(c.index)))
		}
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

// unwrap strips pointer and interface layers down to the concrete
// value.
func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}
	return v
}

func (f *TableFormatter) structTable(v reflect.Value) *Table {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		table.Rows = append(table.Rows, []string{name, cell(v.Field(i))})
	}
	return table
}

func keyValueTable(keyHeader string, v reflect.Value) (*Table, bool) {
	table := &Table{Headers: []string{keyHeader, "VALUE"}}
	iter := v.MapRange()
	for iter.Next() {
		table.Rows = append(table.Rows, []string{cell(iter.Key()), cell(iter.Value())})
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i][0] < table.Rows[j][0]
	})
	return table, true
}

// headerFor derives a column header, preferring the json tag so table
// and json output agree on field naming.
func headerFor(field reflect.StructField) string {
	name := field.Name
	if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
		name = tag
	}
	return upperSnake(name)
}

// upperSnake turns ProductID into PRODUCT_I_D style headers and
// leaves already-snake json tags untouched apart from casing.
func upperSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

var timeType = reflect.TypeOf(time.Time{})

// cell formats one value for a table cell. Empty strings and empty
// collections render as "-" so sparse tables stay scannable.
func cell(v reflect.Value) string {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return ""
	}

	if v.Type() == timeType {
		ts := v.Interface().(time.Time)
		if ts.IsZero() {
			return "-"
		}
		return ts.Format("2006-01-02 15:04")
	}

	switch v.Kind() {
	case reflect.String:
		if s := v.String(); s != "" {
			return s
		}
		return "-"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
