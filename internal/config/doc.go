// Package config provides configuration structures and utilities for pysde2json.
// It defines the main configuration options for downloading the Static Data
// Export, selecting tables, and controlling JSON output.
package config
