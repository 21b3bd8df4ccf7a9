// Package extract converts tables of a Static Data Export database
// into JSON documents.
//
// This package implements the single-pass, stateless batch transform at
// the center of pysde2json: open the SQLite database read-only,
// enumerate a set of table specs, read every row of each table, and
// write each table's rows as a JSON array to <table>.json in the output
// directory.
//
// Design decision: We use SQLite via modernc.org/sqlite because:
//  1. The export is distributed as a single SQLite file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Multiple read-only connections support concurrent table extraction
//
// Output files are written through a temporary file and renamed into
// place, so a failed conversion never leaves a partially-written JSON
// file for the table in progress. JSON object keys always follow the
// table's declared column order, which makes repeated conversions of an
// unchanged database byte-identical.
package extract
