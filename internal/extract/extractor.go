package extract

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/colcrunch/pysde2json/internal/model"
)

// Extractor converts tables of a Static Data Export database into JSON
// files, one file per table.
type Extractor struct {
	// logger is used for structured logging during extraction.
	logger *slog.Logger

	// jobs is the number of tables converted concurrently.
	jobs int

	// pretty enables indented JSON output.
	pretty bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets a custom logger for the extractor.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithJobs sets the number of tables converted concurrently.
// Values below 1 are treated as 1 (sequential conversion).
//
// Design decision: Concurrent extraction uses one read-only connection
// per in-flight table rather than shared mutable state; results are
// collected into an index-addressed slice so output ordering stays
// deterministic regardless of completion order.
func WithJobs(jobs int) ExtractorOption {
	return func(e *Extractor) {
		if jobs > 0 {
			e.jobs = jobs
		}
	}
}

// WithPretty enables indented JSON output files.
func WithPretty(pretty bool) ExtractorOption {
	return func(e *Extractor) {
		e.pretty = pretty
	}
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		jobs: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Convert reads every row of every table in specs from the database at
// databasePath and writes one JSON file per table into outputDir,
// overwriting existing files of the same name.
//
// All specs are validated against the actual schema before any file is
// written, so a missing table or column aborts the run with
// ErrSchemaMismatch without producing output. The run stops at the
// first unrecoverable error; tables already written stay on disk, but
// the table in progress leaves no partial file.
func (e *Extractor) Convert(ctx context.Context, databasePath, outputDir string, specs []model.TableSpec) ([]model.TableResult, error) {
	if len(specs) == 0 {
		return nil, ErrNoTableSpecs
	}

	db, err := OpenDB(databasePath, DBOptions{MaxReaders: e.jobs})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	for _, spec := range specs {
		if err := db.ValidateSpec(ctx, spec); err != nil {
			return nil, err
		}
	}

	e.logger.Info("starting extraction",
		"database", databasePath,
		"outputDir", outputDir,
		"tables", len(specs),
		"jobs", e.jobs,
	)

	if e.jobs <= 1 {
		return e.convertSequential(ctx, db, outputDir, specs)
	}
	return e.convertConcurrent(ctx, db, outputDir, specs)
}

// convertSequential converts tables strictly one after another.
func (e *Extractor) convertSequential(ctx context.Context, db *DB, outputDir string, specs []model.TableSpec) ([]model.TableResult, error) {
	results := make([]model.TableResult, 0, len(specs))

	for _, spec := range specs {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := e.convertTable(ctx, db, outputDir, spec)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// convertConcurrent converts up to e.jobs tables at a time.
// Each in-flight table uses its own read connection from the pool.
func (e *Extractor) convertConcurrent(ctx context.Context, db *DB, outputDir string, specs []model.TableSpec) ([]model.TableResult, error) {
	results := make([]model.TableResult, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := e.convertTable(ctx, db, outputDir, spec)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// convertTable reads one table and writes its JSON file.
func (e *Extractor) convertTable(ctx context.Context, db *DB, outputDir string, spec model.TableSpec) (model.TableResult, error) {
	start := time.Now()

	doc, err := db.ReadTable(ctx, spec)
	if err != nil {
		return model.TableResult{}, err
	}

	outPath, written, err := WriteDocument(doc, outputDir, e.pretty)
	if err != nil {
		return model.TableResult{}, err
	}

	result := model.TableResult{
		Name:       spec.Name,
		Rows:       len(doc.Rows),
		Bytes:      written,
		Duration:   time.Since(start),
		OutputPath: outPath,
	}

	e.logger.Debug("table converted",
		"table", spec.Name,
		"rows", result.Rows,
		"bytes", result.Bytes,
		"duration", result.Duration.Round(time.Millisecond),
	)

	return result, nil
}
