package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/colcrunch/pysde2json/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing, e.g. attaching
// a conversion record to a data release.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeTables(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("SDE Conversion Summary")
	md.PlainText("")

	rows := [][]string{
		{"Version", "`" + report.SDEVersion + "`"},
		{"Output", "`" + report.OutputDir + "`"},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration().Round(time.Millisecond).String()},
		{"Status", w.statusText(report)},
	}
	if report.SourceURL != "" {
		rows = append(rows, []string{"Source", report.SourceURL})
	}
	if report.Downloaded {
		rows = append(rows, []string{"Downloaded", strconv.FormatInt(report.DownloadedBytes, 10) + " bytes"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText returns the status cell based on run state.
func (w *MarkdownWriter) statusText(report *model.RunReport) string {
	if report.ErrorMessage != "" {
		return "❌ Failed - " + report.ErrorMessage
	}
	if report.UpToDate {
		return "✅ Already up to date"
	}
	return "✅ Complete"
}

// writeTables writes the per-table results section.
func (w *MarkdownWriter) writeTables(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Tables) == 0 {
		return
	}

	md.H2("Tables")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Tables)+1)
	for _, t := range report.Tables {
		rows = append(rows, []string{
			"`" + t.Name + "`",
			strconv.Itoa(t.Rows),
			strconv.FormatInt(t.Bytes, 10),
			t.Duration.Round(time.Millisecond).String(),
		})
	}
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(report.TotalRows()) + "**",
		"**" + strconv.FormatInt(report.TotalBytes(), 10) + "**",
		"",
	})

	md.Table(markdown.TableSet{
		Header: []string{"Table", "Rows", "Bytes", "Duration"},
		Rows:   rows,
	})
}
