package model

import "time"

// RunReport summarizes a single conversion run. It is populated
// incrementally by the pipeline steps and rendered by the report package.
type RunReport struct {
	// SDEVersion is the normalized version string that was requested,
	// e.g. "sqlite-latest" or "sde-20260801-TRANQUILITY".
	SDEVersion string `json:"sde_version"`

	// SourceURL is the URL the database was (or would have been) fetched from.
	SourceURL string `json:"source_url,omitempty"`

	// DatabasePath is the local path of the decompressed SQLite database.
	DatabasePath string `json:"database_path,omitempty"`

	// OutputDir is the directory the JSON files were written to.
	OutputDir string `json:"output_dir"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed or aborted.
	FinishedAt time.Time `json:"finished_at"`

	// Downloaded reports whether a fresh database was fetched.
	Downloaded bool `json:"downloaded"`

	// UpToDate reports whether the run was skipped because the local
	// copy already matches the published checksum.
	UpToDate bool `json:"up_to_date"`

	// DownloadedBytes is the size of the compressed archive, when downloaded.
	DownloadedBytes int64 `json:"downloaded_bytes,omitempty"`

	// Checksum is the published MD5 checksum line of the latest export,
	// stored beside the output after a successful run so the next run
	// can skip work when nothing changed.
	Checksum string `json:"checksum,omitempty"`

	// Tables holds one result per converted table, in conversion order.
	Tables []TableResult `json:"tables"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// Error holds the fatal error of an aborted run, if any.
	// It is not serialized directly; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialized reports.
	ErrorMessage string `json:"error,omitempty"`
}

// TableResult records the outcome of converting a single table.
type TableResult struct {
	// Name is the source table name.
	Name string `json:"name"`

	// Rows is the number of records written for the table.
	Rows int `json:"rows"`

	// Bytes is the size of the written JSON file.
	Bytes int64 `json:"bytes"`

	// Duration is how long the table took to read and write.
	Duration time.Duration `json:"duration_ns"`

	// OutputPath is the path of the written JSON file.
	OutputPath string `json:"output_path"`
}

// NewRunReport creates a RunReport for the given normalized SDE version.
func NewRunReport(sdeVersion string) *RunReport {
	return &RunReport{
		SDEVersion: sdeVersion,
		StartedAt:  time.Now().UTC(),
		Tables:     make([]TableResult, 0),
	}
}

// AddTableResult appends a per-table result.
func (r *RunReport) AddTableResult(result TableResult) {
	r.Tables = append(r.Tables, result)
}

// TotalRows returns the number of records written across all tables.
func (r *RunReport) TotalRows() int {
	var total int
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// TotalBytes returns the combined size of all written JSON files.
func (r *RunReport) TotalBytes() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Bytes
	}
	return total
}

// Duration returns the wall-clock duration of the run.
// It returns zero until FinishedAt is set.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
