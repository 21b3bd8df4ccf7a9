// Package log provides logging for pysde2json, built on top of the
// standard slog package.
//
// This package extends slog with a HumanizeHandler that rewrites noisy
// numeric attributes before they reach the underlying handler: byte
// sizes become unit-scaled strings ("312.4 MiB"), row counts gain digit
// grouping, and durations are rounded. SDE tables run to millions of
// rows and hundreds of megabytes, so raw values make log lines hard to
// scan.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("table converted",
//	    "rows", 1234567,   // logged as "1,234,567"
//	    "bytes", 52428800, // logged as "50.0 MiB"
//	)
//	slog.SetDefault(logger)
package log
