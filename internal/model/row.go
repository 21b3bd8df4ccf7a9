package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is a single table row: column names paired with the scalar values
// read from the database. It preserves column order so that JSON output
// is deterministic.
//
// Design decision: We store parallel slices instead of a map because Go
// maps have randomized iteration order. Converting an unchanged source
// twice must produce byte-identical output, which requires that record
// keys always appear in the table's declared column order.
type Row struct {
	// columns holds the column names in declared order.
	columns []string

	// values holds the scalar values, aligned with columns.
	// Valid value types are nil, int64, float64, string, and []byte.
	values []any
}

// NewRow creates a Row from ordered column names and values.
// The two slices must have the same length.
func NewRow(columns []string, values []any) (Row, error) {
	if len(columns) != len(values) {
		return Row{}, fmt.Errorf("row has %d values for %d columns", len(values), len(columns))
	}
	return Row{columns: columns, values: values}, nil
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.columns)
}

// Columns returns the column names in declared order.
func (r Row) Columns() []string {
	return r.columns
}

// Value returns the value for the named column and whether the column exists.
func (r Row) Value(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the row as a JSON object whose keys appear in
// declared column order. NULL becomes null, blobs become base64 strings
// (the encoding/json default for []byte).
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(col)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column name %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of column %q: %w", col, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document holds all rows of one table, ready to be serialized as a
// JSON array and written once to a destination file.
type Document struct {
	// Table is the source table name.
	Table string

	// Rows contains every row of the table in read order.
	// Always non-nil so an empty table serializes as [] rather than null.
	Rows []Row
}

// NewDocument creates an empty Document for the named table.
func NewDocument(table string) *Document {
	return &Document{
		Table: table,
		Rows:  make([]Row, 0),
	}
}

// Append adds a row to the document.
func (d *Document) Append(row Row) {
	d.Rows = append(d.Rows, row)
}
