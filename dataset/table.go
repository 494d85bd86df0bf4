package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A Table is an immutable named relation: ordered column names plus rows of
// string cells. An empty cell means a missing value. Tables are read-only
// snapshots; engine functions never mutate them.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

// SchemaError reports a structural precondition violation: a required column
// (or the table itself) is absent. Malformed cell values never produce a
// SchemaError; they are coerced to missing instead.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("dataset: table %q is not present", e.Table)
	}
	return fmt.Sprintf("dataset: table %q is missing required column(s): %s",
		e.Table, strings.Join(e.Missing, ", "))
}

// New builds a Table from a header and raw rows. Rows shorter than the header
// are padded with missing cells, longer rows are truncated. Inputs are copied
// so the caller cannot alias into the snapshot.
func New(name string, columns []string, rows [][]string) *Table {
	t := &Table{
		name:    name,
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	for _, row := range rows {
		r := make([]string, len(t.columns))
		copy(r, row)
		t.rows = append(t.rows, r)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the column names in declaration order.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.columns) }

// Col returns the index of a named column, or -1 when absent.
func (t *Table) Col(name string) int {
	i, ok := t.index[name]
	if !ok {
		return -1
	}
	return i
}

// Cell returns the raw cell at (row, col). Out-of-range access yields a
// missing value rather than a panic.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return ""
	}
	return t.rows[row][col]
}

// Require fails fast when any of the named columns is absent. Extra columns
// beyond the required set are always ignored.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: t.name, Missing: missing}
	}
	return nil
}

// Missing reports whether a cell holds no value.
func Missing(cell string) bool { return strings.TrimSpace(cell) == "" }

// ParseFloat coerces a cell to a float. Missing or malformed cells report
// false instead of an error.
func ParseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// timeLayouts covers the timestamp shapes seen in the olist exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime coerces a cell to a timestamp. Missing or malformed cells report
// false instead of an error.
func ParseTime(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
