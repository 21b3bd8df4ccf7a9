package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// byteSizeKeys contains attribute keys whose int64 values are byte
// counts and should be rendered with binary units.
var byteSizeKeys = map[string]bool{
	"bytes":            true,
	"size":             true,
	"downloaded_bytes": true,
	"decompressed":     true,
}

// countKeys contains attribute keys whose integer values are large
// counts and should be rendered with digit grouping.
var countKeys = map[string]bool{
	"rows":       true,
	"records":    true,
	"tables":     true,
	"total_rows": true,
}

// HumanizeHandler wraps an slog.Handler to render numeric attributes in
// a human-readable form. It intercepts log records and rewrites matching
// attribute values before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than formatting at
// each call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging raw values, which stay greppable in code
type HumanizeHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// printer formats counts with locale-aware digit grouping.
	printer *message.Printer
}

// NewHumanizeHandler creates a new HumanizeHandler wrapping the given handler.
// If handler is nil, the returned HumanizeHandler uses slog.Default().Handler().
func NewHumanizeHandler(handler slog.Handler) *HumanizeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &HumanizeHandler{
		handler: handler,
		printer: message.NewPrinter(language.English),
	}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *HumanizeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *HumanizeHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.humanizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *HumanizeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.humanizeAttr(a)
	}
	return &HumanizeHandler{handler: h.handler.WithAttrs(rewritten), printer: h.printer}
}

// WithGroup returns a new handler with the given group name.
func (h *HumanizeHandler) WithGroup(name string) slog.Handler {
	return &HumanizeHandler{handler: h.handler.WithGroup(name), printer: h.printer}
}

// humanizeAttr rewrites a single attribute, recursively handling groups.
func (h *HumanizeHandler) humanizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.humanizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	switch a.Value.Kind() {
	case slog.KindInt64:
		if byteSizeKeys[a.Key] {
			return slog.String(a.Key, FormatBytes(a.Value.Int64()))
		}
		if countKeys[a.Key] {
			return slog.String(a.Key, h.printer.Sprintf("%d", a.Value.Int64()))
		}
	case slog.KindDuration:
		return slog.String(a.Key, a.Value.Duration().Round(time.Millisecond).String())
	}

	return a
}

// FormatBytes renders a byte count with binary units, e.g. "312.4 MiB".
// Counts below one KiB are rendered as plain bytes.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// NewLogger creates a logger whose records pass through a
// HumanizeHandler into a text handler writing to w. When verbose is
// true the level is Debug, otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewHumanizeHandler(text))
}
