// Package fetch downloads the Static Data Export from the dump host.
//
// The dump host publishes each export as a bzip2-compressed SQLite
// database, plus an MD5 checksum file for the latest export. This
// package handles:
//   - Normalizing user-supplied version strings to the host's naming scheme
//   - Building download and checksum URLs
//   - Downloading the compressed archive with context cancellation
//   - Checking whether the local copy is already up to date
//   - Decompressing the archive into a usable database file
//
// Design decision: We use net/http directly rather than a third-party
// HTTP client because the interaction is a plain GET of two static
// files. Downloads are written to a temporary file and renamed into
// place so an interrupted download never leaves a truncated archive
// behind.
package fetch
