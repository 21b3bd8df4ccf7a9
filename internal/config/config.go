package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior of the Fuzzwork export hosting where applicable.
const (
	// DefaultSDEVersion converts the most recent published export.
	// Versioned exports (e.g. "sde-20260801-TRANQUILITY") can be
	// requested via the --sde-version flag.
	DefaultSDEVersion = "sqlite-latest"

	// DefaultBaseURL is the Fuzzwork dump host that publishes the
	// SQLite conversion of the Static Data Export. A mirror can be
	// configured via the config file.
	DefaultBaseURL = "https://www.fuzzwork.co.uk/dump"

	// DefaultOutputDir is where JSON files are written, one per table.
	DefaultOutputDir = "sde"

	// DefaultJobs is the number of tables converted concurrently.
	// The default is sequential conversion; the database file is the
	// sole shared resource, so parallelism mostly helps on fast disks.
	DefaultJobs = 1

	// DefaultDownloadTimeout bounds the whole archive download.
	// The compressed export is a few hundred megabytes, so this must be
	// generous for slow connections.
	DefaultDownloadTimeout = 30 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "pysde2json"
)

// Config holds all configuration options for pysde2json.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
type Config struct {
	// SDEVersion is the export version to convert. "sqlite-latest"
	// selects the most recent export; anything else is normalized to
	// the "sde-<date>-TRANQUILITY" form used by the dump host.
	SDEVersion string

	// BaseURL is the dump host to download from.
	BaseURL string

	// OutputDir is the directory JSON files are written to.
	// Versioned runs write into a per-version subdirectory, latest runs
	// into "latest/", matching the layout consumers expect.
	OutputDir string

	// WorkingDir holds intermediate files (the compressed archive and
	// the decompressed database). Defaults to the XDG cache directory.
	WorkingDir string

	// Force reprocesses the version even when the local output is
	// already up to date.
	Force bool

	// Tables restricts conversion to the named tables. When empty,
	// every table discovered in the database is converted.
	Tables []string

	// Pretty enables indented JSON output files. Compact output is the
	// default because the larger tables run to hundreds of megabytes.
	Pretty bool

	// Jobs is the number of tables converted concurrently.
	// Each worker uses its own read-only database connection.
	Jobs int

	// DownloadTimeout bounds the archive download.
	DownloadTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pysde2json in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds options loaded from the config file.
	FileConfig *File

	// JSONSummary prints the run summary as JSON instead of plain text.
	// Mutually exclusive with MarkdownSummary.
	JSONSummary bool

	// MarkdownSummary prints the run summary as Markdown.
	// Mutually exclusive with JSONSummary.
	MarkdownSummary bool

	// SummaryFile writes the run summary to this path instead of stdout.
	SummaryFile string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		SDEVersion:      DefaultSDEVersion,
		BaseURL:         DefaultBaseURL,
		OutputDir:       DefaultOutputDir,
		WorkingDir:      XDGCacheDir(),
		Jobs:            DefaultJobs,
		DownloadTimeout: DefaultDownloadTimeout,
	}
}

// XDGCacheDir returns the XDG cache directory for pysde2json.
// On Linux: ~/.cache/pysde2json
// On macOS: ~/Library/Caches/pysde2json
// On Windows: %LOCALAPPDATA%\pysde2json\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pysde2json.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We validate once after CLI parsing, before any downloading begins,
// to fail fast with a clear message. The first error found is returned
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.SDEVersion == "" {
		return ErrNoVersion
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.WorkingDir == "" {
		return ErrNoWorkingDir
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if c.DownloadTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONSummary && c.MarkdownSummary {
		return ErrConflictingSummaryFormats
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	return nil
}
