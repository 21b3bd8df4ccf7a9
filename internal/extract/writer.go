package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colcrunch/pysde2json/internal/model"
)

// WriteDocument serializes the document's rows as a JSON array and
// writes them to <dir>/<table>.json, overwriting any existing file.
// It returns the output path and the number of bytes written.
//
// The document is marshaled fully before any file is created, and the
// file is written through a temporary name and renamed into place.
// Either the complete document lands at the final path or nothing does;
// a failed run never leaves a partially-written JSON file behind.
func WriteDocument(doc *model.Document, dir string, pretty bool) (string, int64, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc.Rows, "", "  ")
	} else {
		data, err = json.Marshal(doc.Rows)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode table %s: %w", doc.Table, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", 0, fmt.Errorf("%w: failed to create output directory %s: %v", ErrWriteFailure, dir, err)
	}

	outPath := filepath.Join(dir, doc.Table+".json")

	tmp, err := os.CreateTemp(dir, doc.Table+".json.tmp*")
	if err != nil {
		return "", 0, fmt.Errorf("%w: failed to create temporary file in %s: %v", ErrWriteFailure, dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("%w: failed to write %s: %v", ErrWriteFailure, outPath, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("%w: failed to finish %s: %v", ErrWriteFailure, outPath, err)
	}

	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("%w: failed to move %s into place: %v", ErrWriteFailure, outPath, err)
	}

	return outPath, int64(len(data)), nil
}
