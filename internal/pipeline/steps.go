package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/colcrunch/pysde2json/internal/config"
	"github.com/colcrunch/pysde2json/internal/extract"
	"github.com/colcrunch/pysde2json/internal/fetch"
	"github.com/colcrunch/pysde2json/internal/model"
)

// FreshnessStep decides whether the run needs to do any work.
//
// For the latest export it compares the published MD5 checksum against
// the one stored beside the previous output. For versioned exports,
// which are immutable once published, it checks whether the output
// directory already holds files. Either way, an up-to-date output skips
// the run unless force is set.
type FreshnessStep struct {
	// fetcher downloads the published checksum.
	fetcher *fetch.Fetcher

	// outputDir is the resolved per-version output directory.
	outputDir string

	// force reprocesses the export even when output is up to date.
	force bool

	// logger for structured logging.
	logger *slog.Logger
}

// NewFreshnessStep creates a freshness check step.
func NewFreshnessStep(fetcher *fetch.Fetcher, outputDir string, force bool, logger *slog.Logger) *FreshnessStep {
	return &FreshnessStep{
		fetcher:   fetcher,
		outputDir: outputDir,
		force:     force,
		logger:    logger,
	}
}

// Name returns the step name.
func (s *FreshnessStep) Name() string {
	return "freshness_check"
}

// Do executes the freshness check.
func (s *FreshnessStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.SDEVersion != fetch.LatestVersion {
		if s.force {
			s.logger.Info("forcing update of existing export version", "version", report.SDEVersion)
			return nil
		}
		entries, err := os.ReadDir(s.outputDir)
		if err == nil && len(entries) > 0 {
			report.UpToDate = true
			fmt.Printf("%s already exists at %s.\n", report.SDEVersion, s.outputDir)
			return ErrSkipRun
		}
		return nil
	}

	remote, err := s.fetcher.FetchChecksum(ctx)
	if err != nil {
		return fmt.Errorf("freshness check failed: %w", err)
	}
	report.Checksum = remote

	if s.force {
		s.logger.Info("forcing update of latest export")
		return nil
	}

	local, err := fetch.LoadLocalChecksum(s.outputDir)
	if err != nil {
		return err
	}
	if local != "" && local == remote {
		report.UpToDate = true
		fmt.Println("local SDE version already up to date.")
		return ErrSkipRun
	}

	return nil
}

// DownloadStep fetches the compressed export archive into the working
// directory.
type DownloadStep struct {
	// fetcher performs the HTTP download.
	fetcher *fetch.Fetcher

	// archivePath is where the compressed archive is written.
	archivePath string
}

// NewDownloadStep creates a download step.
func NewDownloadStep(fetcher *fetch.Fetcher, archivePath string) *DownloadStep {
	return &DownloadStep{
		fetcher:     fetcher,
		archivePath: archivePath,
	}
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download"
}

// Do executes the download.
func (s *DownloadStep) Do(ctx context.Context, report *model.RunReport) error {
	url := s.fetcher.ArchiveURL(report.SDEVersion)
	report.SourceURL = url

	fmt.Printf("Downloading SDE: %s from %s...\n", report.SDEVersion, url)

	written, err := s.fetcher.DownloadArchive(ctx, report.SDEVersion, s.archivePath)
	if err != nil {
		return err
	}

	report.Downloaded = true
	report.DownloadedBytes = written
	return nil
}

// DecompressStep expands the downloaded archive into a SQLite database
// file in the working directory.
type DecompressStep struct {
	// archivePath is the compressed archive written by DownloadStep.
	archivePath string

	// databasePath is where the decompressed database is written.
	databasePath string
}

// NewDecompressStep creates a decompression step.
func NewDecompressStep(archivePath, databasePath string) *DecompressStep {
	return &DecompressStep{
		archivePath:  archivePath,
		databasePath: databasePath,
	}
}

// Name returns the step name.
func (s *DecompressStep) Name() string {
	return "decompress"
}

// Do executes the decompression.
func (s *DecompressStep) Do(_ context.Context, report *model.RunReport) error {
	if _, err := fetch.Decompress(s.archivePath, s.databasePath); err != nil {
		return err
	}
	report.DatabasePath = s.databasePath
	return nil
}

// ExtractStep converts the database tables into JSON files.
type ExtractStep struct {
	// tables restricts conversion to explicitly named tables.
	// When empty, tables are discovered from the database schema.
	tables []string

	// filter applies the config file's include/exclude lists to
	// discovered tables. It is ignored when tables is non-empty.
	filter config.TableFilter

	// outputDir is the resolved per-version output directory.
	outputDir string

	// jobs is the number of tables converted concurrently.
	jobs int

	// pretty enables indented JSON output.
	pretty bool

	// logger for structured logging.
	logger *slog.Logger
}

// NewExtractStep creates an extraction step.
func NewExtractStep(outputDir string, tables []string, filter config.TableFilter, jobs int, pretty bool, logger *slog.Logger) *ExtractStep {
	return &ExtractStep{
		tables:    tables,
		filter:    filter,
		outputDir: outputDir,
		jobs:      jobs,
		pretty:    pretty,
		logger:    logger,
	}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extraction.
func (s *ExtractStep) Do(ctx context.Context, report *model.RunReport) error {
	specs, err := s.buildSpecs(ctx, report.DatabasePath)
	if err != nil {
		return err
	}

	fmt.Println("Processing SDE tables!")

	extractor := extract.NewExtractor(
		extract.WithLogger(s.logger),
		extract.WithJobs(s.jobs),
		extract.WithPretty(s.pretty),
	)

	results, err := extractor.Convert(ctx, report.DatabasePath, s.outputDir, specs)
	for _, result := range results {
		report.AddTableResult(result)
	}
	if err != nil {
		return err
	}

	report.OutputDir = s.outputDir
	return nil
}

// buildSpecs resolves the table specs for the run: explicitly named
// tables when given, otherwise every table discovered in the database
// that passes the config file's filter.
func (s *ExtractStep) buildSpecs(ctx context.Context, databasePath string) ([]model.TableSpec, error) {
	db, err := extract.OpenDB(databasePath, extract.DefaultDBOptions())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if len(s.tables) > 0 {
		specs := make([]model.TableSpec, 0, len(s.tables))
		for _, name := range s.tables {
			spec, err := db.Spec(ctx, name)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil
	}

	discovered, err := db.DiscoverSpecs(ctx)
	if err != nil {
		return nil, err
	}

	specs := make([]model.TableSpec, 0, len(discovered))
	for _, spec := range discovered {
		if s.filter.Match(spec.Name) {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

// SaveChecksumStep stores the published checksum beside the output so
// the next run can skip work when the export is unchanged.
//
// This runs after extraction rather than after download: saving the
// checksum first would mark a failed conversion as up to date.
type SaveChecksumStep struct {
	// outputDir is the resolved per-version output directory.
	outputDir string
}

// NewSaveChecksumStep creates a checksum save step.
func NewSaveChecksumStep(outputDir string) *SaveChecksumStep {
	return &SaveChecksumStep{outputDir: outputDir}
}

// Name returns the step name.
func (s *SaveChecksumStep) Name() string {
	return "save_checksum"
}

// Do stores the checksum. It is a no-op for versioned exports, which
// have no published checksum.
func (s *SaveChecksumStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Checksum == "" {
		return nil
	}
	return fetch.SaveChecksum(s.outputDir, report.Checksum)
}
