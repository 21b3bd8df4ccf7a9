package model

import "strings"

// ColumnType is the semantic type of a table column.
// SQLite stores values with type affinity rather than strict types,
// so these map to the five affinities defined by the SQLite documentation.
type ColumnType string

// Column type affinities.
const (
	// ColumnInteger holds whole numbers (SQLite INTEGER affinity).
	ColumnInteger ColumnType = "INTEGER"

	// ColumnReal holds floating point numbers (SQLite REAL affinity).
	ColumnReal ColumnType = "REAL"

	// ColumnText holds strings (SQLite TEXT affinity).
	ColumnText ColumnType = "TEXT"

	// ColumnBlob holds raw bytes (SQLite BLOB affinity).
	// Blob values are emitted as base64 strings in JSON output.
	ColumnBlob ColumnType = "BLOB"

	// ColumnNumeric holds values that may be stored as either integer
	// or real depending on the stored value (SQLite NUMERIC affinity).
	ColumnNumeric ColumnType = "NUMERIC"
)

// TypeFromDeclared maps a declared SQL column type to its affinity.
// This follows the affinity determination rules from the SQLite
// documentation (section "Type Affinity"): the declared type string is
// matched by substring, in rule order.
func TypeFromDeclared(declared string) ColumnType {
	d := strings.ToUpper(declared)

	switch {
	case strings.Contains(d, "INT"):
		return ColumnInteger
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return ColumnText
	case strings.Contains(d, "BLOB"), d == "":
		return ColumnBlob
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return ColumnReal
	default:
		return ColumnNumeric
	}
}

// Column describes a single column of a source table.
type Column struct {
	// Name is the column name as declared in the source schema.
	Name string `json:"name"`

	// Type is the column's type affinity.
	Type ColumnType `json:"type"`

	// NotNull reports whether the column carries a NOT NULL constraint.
	NotNull bool `json:"not_null"`
}

// TableSpec is a static description of one source table's name and
// ordered columns. It drives extraction: the column order here defines
// the key order of every JSON record produced for the table.
//
// TableSpecs are defined once (discovered from the source schema or
// configured explicitly) and are read-only at runtime.
type TableSpec struct {
	// Name is the source table name. Output files are named <Name>.json.
	Name string `json:"name"`

	// Columns lists the table's columns in declared order.
	Columns []Column `json:"columns"`
}

// ColumnNames returns the column names in declared order.
func (s TableSpec) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the spec declares a column with the given name.
func (s TableSpec) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}
