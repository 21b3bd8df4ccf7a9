package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/colcrunch/pysde2json/internal/config"
	"github.com/colcrunch/pysde2json/internal/fetch"
	"github.com/colcrunch/pysde2json/internal/log"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and decompress the Static Data Export without converting it",
		Long: `Fetch downloads the requested export archive into the working directory
and decompresses it into a ready-to-use SQLite database. No JSON is
written; this is useful for inspecting the database directly or for
converting it later with "pysde tables" and external tooling.

Examples:
  # Fetch the latest export into the default working directory
  pysde fetch

  # Fetch a dated export into a chosen directory
  pysde fetch --sde-version 20260801 --working-dir ./work`,
		Args: cobra.NoArgs,
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("sde-version", "s", config.DefaultSDEVersion,
		"Export version to fetch (e.g. sde-20260801-TRANQUILITY)")
	cmd.Flags().StringP("working-dir", "w", "",
		"Directory for the downloaded files (default: XDG cache directory)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, _ []string) error {
	versionFlag, err := cmd.Flags().GetString("sde-version")
	if err != nil {
		return err
	}

	workingDir, err := cmd.Flags().GetString("working-dir")
	if err != nil {
		return err
	}
	if workingDir == "" {
		workingDir = config.XDGCacheDir()
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runFetch(ctx, versionFlag, workingDir, logger)
}

// runFetch downloads and decompresses the export.
func runFetch(ctx context.Context, versionFlag, workingDir string, logger *slog.Logger) error {
	version := fetch.NormalizeVersion(versionFlag)

	if err := os.MkdirAll(workingDir, 0750); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	archivePath := filepath.Join(workingDir, archiveFileName)
	databasePath := filepath.Join(workingDir, databaseFileName)

	fetcher := fetch.New(config.DefaultBaseURL)

	fmt.Printf("Downloading SDE: %s from %s...\n", version, fetcher.ArchiveURL(version))

	downloaded, err := fetcher.DownloadArchive(ctx, version, archivePath)
	if err != nil {
		return err
	}
	logger.Info("archive downloaded", "path", archivePath, "bytes", downloaded)

	decompressed, err := fetch.Decompress(archivePath, databasePath)
	if err != nil {
		return err
	}
	logger.Info("archive decompressed", "path", databasePath, "bytes", decompressed)

	fmt.Printf("Database ready at %s\n", databasePath)
	return nil
}
