package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumFileName is the name of the file storing the checksum of the
// last converted export, written next to the JSON output.
const ChecksumFileName = "hash.md5"

// LoadLocalChecksum reads the stored checksum from dir.
// It returns an empty string when no checksum has been stored yet.
func LoadLocalChecksum(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, ChecksumFileName)) //nolint:gosec // Path is derived from user-configured output dir
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read stored checksum: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveChecksum stores the checksum in dir for future freshness checks.
func SaveChecksum(dir, checksum string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create checksum directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ChecksumFileName), []byte(checksum+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to save checksum: %w", err)
	}
	return nil
}

// UpToDate reports whether the output in dir was produced from the
// currently published latest export. It is false when no checksum has
// been stored yet. Only the latest export has a published checksum;
// versioned exports are immutable and checked by directory presence
// instead.
func (f *Fetcher) UpToDate(ctx context.Context, dir string) (bool, error) {
	local, err := LoadLocalChecksum(dir)
	if err != nil {
		return false, err
	}
	if local == "" {
		return false, nil
	}

	remote, err := f.FetchChecksum(ctx)
	if err != nil {
		return false, err
	}

	return local == remote, nil
}
