package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/colcrunch/pysde2json/internal/config"
	"github.com/colcrunch/pysde2json/internal/fetch"
	"github.com/colcrunch/pysde2json/internal/log"
	"github.com/colcrunch/pysde2json/internal/model"
	"github.com/colcrunch/pysde2json/internal/pipeline"
	"github.com/colcrunch/pysde2json/internal/report"
)

// Names of the intermediate files kept in the working directory.
const (
	archiveFileName  = "sde.db.bz2"
	databaseFileName = "sde.db"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Download the Static Data Export and convert its tables to JSON",
		Long: `Convert downloads the requested Static Data Export from the dump host,
decompresses it, and writes every table as a JSON array of objects to
<output-dir>/<version>/<table>.json.

The latest export is skipped when the local output already matches the
published checksum; versioned exports are skipped when their output
directory already exists. Use --force to reprocess either way.

Examples:
  # Convert the latest export
  pysde convert

  # Convert a specific dated export
  pysde convert --sde-version sde-20260801-TRANQUILITY

  # Convert only two tables, four at a time, pretty-printed
  pysde convert --tables invTypes,invGroups --jobs 4 --pretty

  # Write a Markdown conversion summary next to the data
  pysde convert --markdown --summary-file sde/latest/SUMMARY.md

Configuration file (.pysde2json) example:
  baseUrl: https://sde-mirror.example.org/dump
  pretty: true
  tables:
    exclude:
      - trnTranslations`,
		Args: cobra.NoArgs,
		RunE: runConvertCmd,
	}

	// Source selection flags
	cmd.Flags().StringP("sde-version", "s", config.DefaultSDEVersion,
		"Export version to convert (e.g. sde-20260801-TRANQUILITY)")
	cmd.Flags().BoolP("force", "f", false,
		"Reprocess the version even when local output is up to date")

	// Directory flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory to write JSON files to")
	cmd.Flags().StringP("working-dir", "w", "",
		"Directory for intermediate files (default: XDG cache directory)")

	// Extraction flags
	cmd.Flags().StringSliceP("tables", "t", nil,
		"Convert only the named tables (default: every table in the export)")
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of tables to convert concurrently")
	cmd.Flags().Bool("pretty", false,
		"Indent JSON output files")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pysde2json in current or home directory)")

	// Summary flags
	cmd.Flags().Bool("json", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().String("summary-file", "",
		"Write the run summary to the specified file path instead of stdout")

	return cmd
}

// runConvertCmd executes the convert command.
func runConvertCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runConvert(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// optional configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.SDEVersion, err = cmd.Flags().GetString("sde-version")
	if err != nil {
		return nil, err
	}

	cfg.Force, err = cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	workingDir, err := cmd.Flags().GetString("working-dir")
	if err != nil {
		return nil, err
	}
	if workingDir != "" {
		cfg.WorkingDir = workingDir
	}

	cfg.Tables, err = cmd.Flags().GetStringSlice("tables")
	if err != nil {
		return nil, err
	}

	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	cfg.Pretty, err = cmd.Flags().GetBool("pretty")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONSummary, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SummaryFile, err = cmd.Flags().GetString("summary-file")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load options from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{}
	}

	// Flags override the config file.
	if cfg.FileConfig.BaseURL != "" {
		cfg.BaseURL = cfg.FileConfig.BaseURL
	}
	if cfg.FileConfig.Pretty && !cmd.Flags().Changed("pretty") {
		cfg.Pretty = true
	}

	return cfg, nil
}

// runConvert executes the conversion run.
func runConvert(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	version := fetch.NormalizeVersion(cfg.SDEVersion)
	outputDir := resolveOutputDir(cfg.OutputDir, version)

	if err := os.MkdirAll(cfg.WorkingDir, 0750); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	archivePath := filepath.Join(cfg.WorkingDir, archiveFileName)
	databasePath := filepath.Join(cfg.WorkingDir, databaseFileName)

	fetcher := fetch.New(cfg.BaseURL, fetch.WithTimeout(cfg.DownloadTimeout))

	logger.Info("starting conversion",
		"version", version,
		"outputDir", outputDir,
		"workingDir", cfg.WorkingDir,
		"force", cfg.Force,
		"jobs", cfg.Jobs,
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewFreshnessStep(fetcher, outputDir, cfg.Force, logger),
		pipeline.NewDownloadStep(fetcher, archivePath),
		pipeline.NewDecompressStep(archivePath, databasePath),
		pipeline.NewExtractStep(outputDir, cfg.Tables, cfg.FileConfig.Tables, cfg.Jobs, cfg.Pretty, logger),
		pipeline.NewSaveChecksumStep(outputDir),
	)

	runReport := model.NewRunReport(version)
	runReport.OutputDir = outputDir

	startTime := time.Now()
	execErr := p.Execute(ctx, runReport)
	if execErr == nil && !runReport.UpToDate {
		fmt.Printf("Conversion completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))
	}

	// The summary is written even for failed runs so the error and any
	// tables converted before the abort are visible.
	if err := outputSummary(cfg, runReport); err != nil {
		logger.Error("summary failed", "error", err)
	}

	return execErr
}

// resolveOutputDir returns the per-version output directory:
// <outputDir>/latest for the latest export, <outputDir>/<version>
// otherwise.
func resolveOutputDir(outputDir, version string) string {
	if version == fetch.LatestVersion {
		return filepath.Join(outputDir, "latest")
	}
	return filepath.Join(outputDir, version)
}

// outputSummary outputs the run summary in the requested format.
func outputSummary(cfg *config.Config, runReport *model.RunReport) error {
	// Determine output destination
	var output *os.File
	if cfg.SummaryFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.SummaryFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create summary directory: %w", err)
			}
		}

		f, err := os.Create(cfg.SummaryFile)
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONSummary:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownSummary:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(runReport)
	return err
}
