package fetch

import (
	"os"
	"path/filepath"
	"testing"
)

// helloArchive is "hello static data export\n" compressed with bzip2.
var helloArchive = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x94, 0xdb,
	0x25, 0x51, 0x00, 0x00, 0x05, 0xd1, 0x80, 0x00, 0x10, 0x40, 0x00, 0x2e,
	0x64, 0xdc, 0x40, 0x20, 0x00, 0x22, 0x9e, 0xa3, 0xd4, 0x66, 0x93, 0x10,
	0xa6, 0x00, 0x02, 0x89, 0x8d, 0xf4, 0x26, 0x41, 0xca, 0x8c, 0x7a, 0xe1,
	0xaa, 0x6c, 0x3f, 0xc5, 0xdc, 0x91, 0x4e, 0x14, 0x24, 0x25, 0x36, 0xc9,
	0x54, 0x40,
}

// TestDecompress verifies bzip2 archive extraction.
func TestDecompress(t *testing.T) {
	t.Parallel()

	t.Run("valid archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "sde.db.bz2")
		dst := filepath.Join(dir, "sde.db")

		if err := os.WriteFile(src, helloArchive, 0600); err != nil {
			t.Fatal(err)
		}

		written, err := Decompress(src, dst)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}

		want := "hello static data export\n"
		if string(data) != want {
			t.Errorf("expected %q, got %q", want, data)
		}
		if written != int64(len(want)) {
			t.Errorf("expected %d bytes, got %d", len(want), written)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := Decompress(filepath.Join(dir, "nope.bz2"), filepath.Join(dir, "out")); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("corrupt archive leaves no destination", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "bad.bz2")
		dst := filepath.Join(dir, "out.db")

		if err := os.WriteFile(src, []byte("this is not bzip2"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := Decompress(src, dst); err == nil {
			t.Error("expected error for corrupt archive")
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Error("expected no destination file after failed decompression")
		}
	})
}
