package extract

import "errors"

// Extraction error kinds. Each fatal extraction error wraps exactly one
// of these sentinels so callers can classify failures with errors.Is()
// while the wrapped message carries the specifics.
var (
	// ErrSourceUnavailable is returned when the database file is
	// missing, unreadable, or not a usable SQLite database.
	ErrSourceUnavailable = errors.New("source database unavailable")

	// ErrSchemaMismatch is returned when an expected table or column is
	// absent. This usually means the upstream export format changed and
	// the configured table specs are stale.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrWriteFailure is returned when an output file cannot be written,
	// e.g. due to permissions or a full disk.
	ErrWriteFailure = errors.New("write failure")

	// ErrNoTableSpecs is returned when Convert is called with an empty
	// table spec list.
	ErrNoTableSpecs = errors.New("no table specs provided")
)
