package extract

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/colcrunch/pysde2json/internal/model"
)

// DB is a read-only handle on a Static Data Export database.
type DB struct {
	// db is the underlying SQL database connection pool.
	db *sql.DB

	// path is the path to the SQLite database file.
	path string
}

// DBOptions configures how the database is opened.
type DBOptions struct {
	// MaxReaders is the maximum number of concurrent read connections.
	// SQLite supports multiple concurrent readers, so this should match
	// the number of tables extracted in parallel.
	MaxReaders int
}

// DefaultDBOptions returns the default database options.
func DefaultDBOptions() DBOptions {
	return DBOptions{MaxReaders: 1}
}

// OpenDB opens the SQLite database at path read-only.
// It returns an error wrapping ErrSourceUnavailable when the file is
// missing or is not a usable SQLite database.
func OpenDB(path string, opts DBOptions) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	// mode=ro prevents the driver from creating or mutating the file;
	// extraction never writes to the source.
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrSourceUnavailable, path, err)
	}

	if opts.MaxReaders < 1 {
		opts.MaxReaders = 1
	}
	db.SetMaxOpenConns(opts.MaxReaders)
	db.SetMaxIdleConns(opts.MaxReaders)
	db.SetConnMaxLifetime(time.Hour)

	// sql.Open is lazy; force a query so corruption and non-database
	// files surface here rather than mid-extraction.
	var schemaVersion int
	if err := db.QueryRowContext(context.Background(), "PRAGMA schema_version").Scan(&schemaVersion); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s is not a readable SQLite database: %v", ErrSourceUnavailable, path, err)
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the path of the underlying database file.
func (d *DB) Path() string {
	return d.path
}

// DiscoverSpecs builds a TableSpec for every user table in the
// database, ordered by name. SQLite's internal bookkeeping tables
// (sqlite_*) are excluded.
func (d *DB) DiscoverSpecs(ctx context.Context) ([]model.TableSpec, error) {
	query := `
	SELECT name FROM sqlite_schema
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to enumerate tables: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to enumerate tables: %w", err)
	}

	specs := make([]model.TableSpec, 0, len(names))
	for _, name := range names {
		spec, err := d.Spec(ctx, name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// Spec introspects the named table and returns its TableSpec.
// It returns an error wrapping ErrSchemaMismatch when the table does
// not exist.
func (d *DB) Spec(ctx context.Context, table string) (model.TableSpec, error) {
	rows, err := d.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return model.TableSpec{}, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}
	defer rows.Close()

	spec := model.TableSpec{Name: table}
	for rows.Next() {
		var (
			cid      int
			name     string
			declared string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return model.TableSpec{}, fmt.Errorf("failed to scan column info of %s: %w", table, err)
		}
		spec.Columns = append(spec.Columns, model.Column{
			Name:    name,
			Type:    model.TypeFromDeclared(declared),
			NotNull: notNull != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return model.TableSpec{}, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}

	// PRAGMA table_info returns zero rows for unknown tables instead of
	// an error.
	if len(spec.Columns) == 0 {
		return model.TableSpec{}, fmt.Errorf("%w: table %s not found", ErrSchemaMismatch, table)
	}

	return spec, nil
}

// ValidateSpec checks that the database contains the table and every
// column the spec declares. It returns an error wrapping
// ErrSchemaMismatch on the first absent table or column.
func (d *DB) ValidateSpec(ctx context.Context, spec model.TableSpec) error {
	actual, err := d.Spec(ctx, spec.Name)
	if err != nil {
		return err
	}

	for _, col := range spec.Columns {
		if !actual.HasColumn(col.Name) {
			return fmt.Errorf("%w: table %s has no column %s", ErrSchemaMismatch, spec.Name, col.Name)
		}
	}

	return nil
}

// ReadTable reads every row of the table described by spec, in the
// order the database returns them, honoring the spec's column order.
// The returned document's Rows slice is non-nil even for empty tables.
func (d *DB) ReadTable(ctx context.Context, spec model.TableSpec) (*model.Document, error) {
	columns := spec.ColumnNames()

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	query := "SELECT " + strings.Join(quoted, ", ") + " FROM " + quoteIdent(spec.Name)

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", spec.Name, err)
	}
	defer rows.Close()

	doc := model.NewDocument(spec.Name)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", spec.Name, err)
		}

		// The driver may reuse blob buffers between scans.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = append([]byte(nil), b...)
			}
		}

		row, err := model.NewRow(columns, values)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", spec.Name, err)
		}
		doc.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", spec.Name, err)
	}

	return doc, nil
}

// CountRows returns the number of rows in the named table.
func (d *DB) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return count, nil
}

// quoteIdent quotes an SQL identifier so table and column names taken
// from the schema can be used in statements safely.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
