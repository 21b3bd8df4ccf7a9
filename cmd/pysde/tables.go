package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/colcrunch/pysde2json/internal/extract"
)

// NewTablesCmd creates the tables command.
func NewTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <database>",
		Short: "List the tables of a local Static Data Export database",
		Long: `Tables lists every table of a local SDE SQLite database together with
its column and row counts. Use "pysde fetch" to download a database
first.

Example:
  pysde tables ~/.cache/pysde2json/sde.db`,
		Args: cobra.ExactArgs(1),
		RunE: runTablesCmd,
	}
}

// runTablesCmd executes the tables command.
func runTablesCmd(cmd *cobra.Command, args []string) error {
	db, err := extract.OpenDB(args[0], extract.DefaultDBOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	specs, err := db.DiscoverSpecs(ctx)
	if err != nil {
		return err
	}

	printer := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()

	printer.Fprintf(out, "%-40s %8s %14s\n", "TABLE", "COLUMNS", "ROWS")
	for _, spec := range specs {
		count, err := db.CountRows(ctx, spec.Name)
		if err != nil {
			return err
		}
		printer.Fprintf(out, "%-40s %8d %14d\n", spec.Name, len(spec.Columns), count)
	}

	fmt.Fprintf(out, "\n%d tables\n", len(specs))
	return nil
}
