package fetch

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Decompress expands the bzip2-compressed archive at srcPath into
// dstPath and returns the decompressed size. Like DownloadArchive, it
// writes through a temporary file so dstPath never holds a partially
// decompressed database.
func Decompress(srcPath, dstPath string) (int64, error) {
	src, err := os.Open(srcPath) //nolint:gosec // Path is under the configured working dir
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), filepath.Base(dstPath)+".tmp*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	written, err := io.Copy(tmp, bzip2.NewReader(src))
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to decompress archive: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to finish database write: %w", err)
	}

	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to move database into place: %w", err)
	}

	return written, nil
}
