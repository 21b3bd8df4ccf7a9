package extract

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/colcrunch/pysde2json/internal/model"
)

// newTestDB creates a small SQLite database mimicking a Static Data
// Export and returns its path.
func newTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sde.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE invTypes (
			typeID INTEGER NOT NULL,
			typeName VARCHAR(100),
			mass DOUBLE,
			description TEXT,
			iconData BLOB
		)`,
		`CREATE TABLE invGroups (
			groupID INTEGER NOT NULL,
			groupName VARCHAR(100)
		)`,
		`CREATE TABLE emptyTable (id INTEGER)`,
		`INSERT INTO invTypes VALUES (34, 'Tritanium', 1.0, 'The most common ore.', X'0102')`,
		`INSERT INTO invTypes VALUES (35, 'Pyerite', 1.5, NULL, NULL)`,
		`INSERT INTO invGroups VALUES (18, 'Mineral')`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

// TestOpenDB verifies open failures surface ErrSourceUnavailable.
func TestOpenDB(t *testing.T) {
	t.Parallel()

	t.Run("valid database", func(t *testing.T) {
		t.Parallel()

		path := newTestDB(t)
		db, err := OpenDB(path, DefaultDBOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer db.Close()

		if db.Path() != path {
			t.Errorf("expected path %s, got %s", path, db.Path())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := OpenDB(filepath.Join(t.TempDir(), "nope.db"), DefaultDBOptions())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("not a database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "garbage.db")
		if err := os.WriteFile(path, []byte("this is not SQLite at all, not even close"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := OpenDB(path, DefaultDBOptions())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})
}

// TestDiscoverSpecs verifies table enumeration and ordering.
func TestDiscoverSpecs(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(newTestDB(t), DefaultDBOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	specs, err := db.DiscoverSpecs(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"emptyTable", "invGroups", "invTypes"}
	if len(specs) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(specs))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("expected table %d to be %s, got %s", i, name, specs[i].Name)
		}
	}
}

// TestSpec verifies column introspection and type mapping.
func TestSpec(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(newTestDB(t), DefaultDBOptions())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	t.Run("existing table", func(t *testing.T) {
		t.Parallel()

		spec, err := db.Spec(context.Background(), "invTypes")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		wantColumns := []model.Column{
			{Name: "typeID", Type: model.ColumnInteger, NotNull: true},
			{Name: "typeName", Type: model.ColumnText},
			{Name: "mass", Type: model.ColumnReal},
			{Name: "description", Type: model.ColumnText},
			{Name: "iconData", Type: model.ColumnBlob},
		}
		if len(spec.Columns) != len(wantColumns) {
			t.Fatalf("expected %d columns, got %d", len(wantColumns), len(spec.Columns))
		}
		for i, want := range wantColumns {
			if spec.Columns[i] != want {
				t.Errorf("column %d: expected %+v, got %+v", i, want, spec.Columns[i])
			}
		}
	})

	t.Run("missing table returns ErrSchemaMismatch", func(t *testing.T) {
		t.Parallel()

		_, err := db.Spec(context.Background(), "noSuchTable")
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("expected ErrSchemaMismatch, got %v", err)
		}
	})
}

// TestValidateSpec verifies schema validation against the live database.
func TestValidateSpec(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(newTestDB(t), DefaultDBOptions())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	t.Run("matching spec", func(t *testing.T) {
		t.Parallel()

		spec := model.TableSpec{
			Name: "invGroups",
			Columns: []model.Column{
				{Name: "groupID", Type: model.ColumnInteger},
				{Name: "groupName", Type: model.ColumnText},
			},
		}
		if err := db.ValidateSpec(context.Background(), spec); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()

		spec := model.TableSpec{
			Name:    "invGroups",
			Columns: []model.Column{{Name: "anchorable", Type: model.ColumnInteger}},
		}
		if err := db.ValidateSpec(context.Background(), spec); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("expected ErrSchemaMismatch, got %v", err)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()

		spec := model.TableSpec{Name: "noSuchTable"}
		if err := db.ValidateSpec(context.Background(), spec); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("expected ErrSchemaMismatch, got %v", err)
		}
	})
}

// TestReadTable verifies row reading with column ordering and NULLs.
func TestReadTable(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(newTestDB(t), DefaultDBOptions())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	t.Run("populated table", func(t *testing.T) {
		t.Parallel()

		spec, err := db.Spec(context.Background(), "invTypes")
		if err != nil {
			t.Fatal(err)
		}

		doc, err := db.ReadTable(context.Background(), spec)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(doc.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
		}

		v, ok := doc.Rows[0].Value("typeName")
		if !ok || v != "Tritanium" {
			t.Errorf("expected Tritanium, got %v", v)
		}

		// NULL columns come back as nil values, present in every row
		v, ok = doc.Rows[1].Value("description")
		if !ok {
			t.Fatal("expected description column to be present")
		}
		if v != nil {
			t.Errorf("expected nil for NULL column, got %v", v)
		}
	})

	t.Run("empty table yields non-nil rows", func(t *testing.T) {
		t.Parallel()

		spec, err := db.Spec(context.Background(), "emptyTable")
		if err != nil {
			t.Fatal(err)
		}

		doc, err := db.ReadTable(context.Background(), spec)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Rows == nil {
			t.Error("expected non-nil Rows for empty table")
		}
		if len(doc.Rows) != 0 {
			t.Errorf("expected 0 rows, got %d", len(doc.Rows))
		}
	})
}

// TestCountRows verifies row counting.
func TestCountRows(t *testing.T) {
	t.Parallel()

	db, err := OpenDB(newTestDB(t), DefaultDBOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	count, err := db.CountRows(context.Background(), "invTypes")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

// TestQuoteIdent verifies identifier quoting.
func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"invTypes", `"invTypes"`},
		{`odd"name`, `"odd""name"`},
	}
	for _, tt := range tests {
		if got := quoteIdent(tt.in); got != tt.want {
			t.Errorf("quoteIdent(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
