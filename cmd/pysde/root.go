// Package main provides the entry point for the pysde CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pysde.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pysde",
		Short: "Convert EVE Online's Static Data Export to JSON",
		Long: `pysde downloads EVE Online's Static Data Export (the SQLite database
published by Fuzzwork) and converts its tables into JSON files, one
JSON array of objects per table.

By default, the latest export is downloaded and every table is
converted. Use --sde-version to convert a specific dated export, and
--tables to convert a subset of tables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewTablesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
