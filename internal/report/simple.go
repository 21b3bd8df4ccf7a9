package report

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/colcrunch/pysde2json/internal/model"
)

// SimpleWriter outputs a human-readable run summary for terminal display.
// Row and byte counts are printed with digit grouping because SDE tables
// run to millions of rows.
type SimpleWriter struct {
	baseWriter

	// printer formats numbers with locale-aware digit grouping.
	printer *message.Printer
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the run summary as plain text.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var total int

	n, err := fmt.Fprintf(w.output, "SDE Conversion Summary\n======================\n\n")
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w.output, "Version:  %s\n", report.SDEVersion)
	total += n
	if err != nil {
		return total, err
	}

	if report.SourceURL != "" {
		n, err = fmt.Fprintf(w.output, "Source:   %s\n", report.SourceURL)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w.output, "Output:   %s\n", report.OutputDir)
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w.output, "Status:   %s\n\n", w.statusText(report))
	total += n
	if err != nil {
		return total, err
	}

	if len(report.Tables) > 0 {
		n, err = w.writeTables(report)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// statusText returns a one-line status for the run.
func (w *SimpleWriter) statusText(report *model.RunReport) string {
	switch {
	case report.ErrorMessage != "":
		return "failed - " + report.ErrorMessage
	case report.UpToDate:
		return "already up to date"
	default:
		return w.printer.Sprintf("converted %d tables in %v",
			len(report.Tables), report.Duration().Round(time.Millisecond))
	}
}

// writeTables outputs the per-table breakdown and totals.
func (w *SimpleWriter) writeTables(report *model.RunReport) (int, error) {
	var total int

	for _, t := range report.Tables {
		n, err := w.printer.Fprintf(w.output, "  %-40s %12d rows %14d bytes\n", t.Name, t.Rows, t.Bytes)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := w.printer.Fprintf(w.output, "\nTotal: %d tables, %d rows, %d bytes\n",
		len(report.Tables), report.TotalRows(), report.TotalBytes())
	total += n
	return total, err
}
