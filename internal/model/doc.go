// Package model defines the core data structures used throughout pysde2json.
//
// This package contains the following main types:
//   - TableSpec: Static description of one source table's name and columns
//   - Row: A single table row with column order preserved
//   - Document: All rows of one table, ready to be written as JSON
//   - RunReport: Summary of a conversion run for report output
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, pipeline, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for output files and
// run summaries.
package model
