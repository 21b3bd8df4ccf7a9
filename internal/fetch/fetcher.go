package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultUserAgent identifies pysde2json in HTTP requests.
// A descriptive User-Agent lets the dump host operator identify the
// traffic in their logs.
const DefaultUserAgent = "pysde2json (+https://github.com/colcrunch/pysde2json)"

// maxChecksumSize bounds the checksum file read. MD5 checksum files are
// a single short line; anything larger indicates a wrong URL.
const maxChecksumSize = 1024

// ErrVersionNotFound is returned when the dump host has no archive for
// the requested version (HTTP 404).
var ErrVersionNotFound = errors.New("export version not found on dump host")

// Fetcher downloads export archives and checksums from a dump host.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts) should be consistent
//  2. Connection reuse works better with a shared client
//  3. Easier to test with httptest servers
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// baseURL is the dump host root, e.g. "https://www.fuzzwork.co.uk/dump".
	baseURL string

	// userAgent is the User-Agent header sent with requests.
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
// Useful for tests and for callers that need proxy configuration.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTimeout sets the overall request timeout on the default client.
// The archive is a few hundred megabytes compressed, so this should be
// generous. Ignored when WithHTTPClient is also used.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a Fetcher for the given dump host base URL.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Minute},
		baseURL:   baseURL,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// ArchiveURL returns the download URL for the given normalized version.
func (f *Fetcher) ArchiveURL(version string) string {
	return ArchiveURL(f.baseURL, version)
}

// DownloadArchive downloads the compressed database for the given
// normalized version to destPath. It returns the number of bytes
// written. The file is written via a temporary name and renamed into
// place, so destPath never holds a truncated archive.
func (f *Fetcher) DownloadArchive(ctx context.Context, version, destPath string) (int64, error) {
	body, err := f.get(ctx, f.ArchiveURL(version))
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return 0, fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".tmp*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	written, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to download archive: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to finish archive write: %w", err)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to move archive into place: %w", err)
	}

	return written, nil
}

// FetchChecksum downloads the published MD5 checksum of the latest
// export. The returned string is the full checksum line with
// surrounding whitespace trimmed.
func (f *Fetcher) FetchChecksum(ctx context.Context) (string, error) {
	body, err := f.get(ctx, ChecksumURL(f.baseURL))
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxChecksumSize))
	if err != nil {
		return "", fmt.Errorf("failed to read checksum: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// get issues a GET request and returns the response body on HTTP 200.
func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", url, ErrVersionNotFound)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
}
