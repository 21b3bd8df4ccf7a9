package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoVersion is returned when no SDE version is configured.
	// Use "sqlite-latest" to convert the most recent export.
	ErrNoVersion = errors.New("no SDE version specified: use --sde-version or the default sqlite-latest")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrNoWorkingDir is returned when the working directory is empty.
	ErrNoWorkingDir = errors.New("no working directory specified")

	// ErrInvalidJobs is returned when the job count is not positive.
	// A job count of zero would mean no tables get converted.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidTimeout is returned when the download timeout is not positive.
	// A zero or negative timeout would cause immediate download failures.
	ErrInvalidTimeout = errors.New("invalid download timeout: must be positive")

	// ErrConflictingSummaryFormats is returned when both --json and --markdown
	// are specified. Only one summary format can be used at a time.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")

	// ErrInvalidBaseURL is returned when the download base URL is empty
	// or cannot be parsed.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)
