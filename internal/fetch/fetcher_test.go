package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newDumpServer starts a test server that serves the given archive
// bytes for the latest export and a checksum file beside it.
func newDumpServer(t *testing.T, archive []byte, checksum string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/dump/sqlite-latest.sqlite.bz2", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(archive) //nolint:errcheck // test server
	})
	mux.HandleFunc("/dump/sqlite-latest.sqlite.bz2.md5", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(checksum + "\n")) //nolint:errcheck // test server
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestDownloadArchive verifies archive downloading.
func TestDownloadArchive(t *testing.T) {
	t.Parallel()

	t.Run("successful download", func(t *testing.T) {
		t.Parallel()

		payload := []byte("compressed database bytes")
		srv := newDumpServer(t, payload, "abc123")

		f := New(srv.URL + "/dump")
		dest := filepath.Join(t.TempDir(), "sde.db.bz2")

		written, err := f.DownloadArchive(context.Background(), LatestVersion, dest)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != int64(len(payload)) {
			t.Errorf("expected %d bytes, got %d", len(payload), written)
		}

		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(payload) {
			t.Errorf("downloaded content mismatch: %q", data)
		}
	})

	t.Run("unknown version returns ErrVersionNotFound", func(t *testing.T) {
		t.Parallel()

		srv := newDumpServer(t, nil, "")
		f := New(srv.URL + "/dump")
		dest := filepath.Join(t.TempDir(), "sde.db.bz2")

		_, err := f.DownloadArchive(context.Background(), "sde-19000101-TRANQUILITY", dest)
		if !errors.Is(err, ErrVersionNotFound) {
			t.Errorf("expected ErrVersionNotFound, got %v", err)
		}

		// A failed download must not leave a destination file behind
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Error("expected no destination file after failed download")
		}
	})

	t.Run("server error returns error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		f := New(srv.URL + "/dump")
		_, err := f.DownloadArchive(context.Background(), LatestVersion, filepath.Join(t.TempDir(), "x"))
		if err == nil {
			t.Error("expected error for HTTP 500")
		}
	})

	t.Run("cancelled context aborts download", func(t *testing.T) {
		t.Parallel()

		srv := newDumpServer(t, []byte("data"), "abc")
		f := New(srv.URL + "/dump")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.DownloadArchive(ctx, LatestVersion, filepath.Join(t.TempDir(), "x"))
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

// TestFetchChecksum verifies checksum retrieval and trimming.
func TestFetchChecksum(t *testing.T) {
	t.Parallel()

	srv := newDumpServer(t, nil, "d41d8cd98f00b204e9800998ecf8427e  sqlite-latest.sqlite.bz2")
	f := New(srv.URL + "/dump")

	sum, err := f.FetchChecksum(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.HasSuffix(sum, "\n") {
		t.Error("expected trailing newline to be trimmed")
	}
	if sum != "d41d8cd98f00b204e9800998ecf8427e  sqlite-latest.sqlite.bz2" {
		t.Errorf("unexpected checksum: %q", sum)
	}
}

// TestUpToDate verifies the local/remote checksum comparison.
func TestUpToDate(t *testing.T) {
	t.Parallel()

	const checksum = "0123456789abcdef  sqlite-latest.sqlite.bz2"

	t.Run("no stored checksum means stale", func(t *testing.T) {
		t.Parallel()

		srv := newDumpServer(t, nil, checksum)
		f := New(srv.URL + "/dump")

		fresh, err := f.UpToDate(context.Background(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if fresh {
			t.Error("expected stale when no checksum is stored")
		}
	})

	t.Run("matching checksum means up to date", func(t *testing.T) {
		t.Parallel()

		srv := newDumpServer(t, nil, checksum)
		f := New(srv.URL + "/dump")

		dir := t.TempDir()
		if err := SaveChecksum(dir, checksum); err != nil {
			t.Fatal(err)
		}

		fresh, err := f.UpToDate(context.Background(), dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !fresh {
			t.Error("expected up to date for matching checksum")
		}
	})

	t.Run("different checksum means stale", func(t *testing.T) {
		t.Parallel()

		srv := newDumpServer(t, nil, checksum)
		f := New(srv.URL + "/dump")

		dir := t.TempDir()
		if err := SaveChecksum(dir, "fedcba9876543210  sqlite-latest.sqlite.bz2"); err != nil {
			t.Fatal(err)
		}

		fresh, err := f.UpToDate(context.Background(), dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if fresh {
			t.Error("expected stale for different checksum")
		}
	})
}

// TestSaveAndLoadChecksum verifies checksum persistence round-trips.
func TestSaveAndLoadChecksum(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "latest")

	// SaveChecksum creates the directory as needed
	if err := SaveChecksum(dir, "cafebabe"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := LoadLocalChecksum(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "cafebabe" {
		t.Errorf("expected cafebabe, got %q", got)
	}
}
