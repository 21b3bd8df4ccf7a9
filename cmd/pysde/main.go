// Package main provides the entry point for the pysde CLI.
//
// pysde downloads EVE Online's Static Data Export (published as a
// bzip2-compressed SQLite database) and converts its tables into JSON
// files, one file per table.
//
// Usage:
//
//	pysde convert
//	pysde convert --sde-version sde-20260801-TRANQUILITY
//
// See --help for all available options.
package main

// main is the entry point for pysde.
func main() {
	Execute()
}
