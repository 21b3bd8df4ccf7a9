package fetch

import "strings"

// LatestVersion is the pseudo-version selecting the most recent export.
const LatestVersion = "sqlite-latest"

// Version name parts used by the dump host.
// Versioned exports are published as "sde-<date>-TRANQUILITY", named
// after the game server cluster the snapshot was taken from.
const (
	versionPrefix = "sde-"
	serverSuffix  = "-TRANQUILITY"
)

// NormalizeVersion converts a user-supplied version string into the
// form used by the dump host. "sqlite-latest" passes through; any other
// value gains the "sde-" prefix and "-TRANQUILITY" suffix as needed, so
// "20260801", "sde-20260801", and "sde-20260801-TRANQUILITY" all
// normalize to the same version.
func NormalizeVersion(version string) string {
	if version == LatestVersion {
		return version
	}

	if !strings.HasPrefix(version, versionPrefix) {
		version = versionPrefix + version
	}
	if !strings.HasSuffix(version, serverSuffix) {
		version += serverSuffix
	}
	return version
}

// ArchiveURL builds the download URL for the given normalized version.
// The latest export lives at the top of the dump tree; versioned
// exports each have their own directory.
func ArchiveURL(baseURL, version string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if version == LatestVersion {
		return base + "/sqlite-latest.sqlite.bz2"
	}
	return base + "/" + version + "/eve.db.bz2"
}

// ChecksumURL builds the URL of the MD5 checksum published for the
// latest export. The dump host only publishes checksums for the latest
// archive, not for versioned ones.
func ChecksumURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/sqlite-latest.sqlite.bz2.md5"
}
