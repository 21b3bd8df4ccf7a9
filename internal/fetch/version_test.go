package fetch

import "testing"

// TestNormalizeVersion verifies that every accepted spelling of a
// versioned export normalizes to the dump host's naming scheme.
func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"sqlite-latest", "sqlite-latest"},
		{"20260801", "sde-20260801-TRANQUILITY"},
		{"sde-20260801", "sde-20260801-TRANQUILITY"},
		{"20260801-TRANQUILITY", "sde-20260801-TRANQUILITY"},
		{"sde-20260801-TRANQUILITY", "sde-20260801-TRANQUILITY"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeVersion(tt.in); got != tt.want {
				t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestArchiveURL verifies download URL construction.
func TestArchiveURL(t *testing.T) {
	t.Parallel()

	const base = "https://www.fuzzwork.co.uk/dump"

	t.Run("latest export", func(t *testing.T) {
		t.Parallel()
		want := "https://www.fuzzwork.co.uk/dump/sqlite-latest.sqlite.bz2"
		if got := ArchiveURL(base, LatestVersion); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("versioned export", func(t *testing.T) {
		t.Parallel()
		want := "https://www.fuzzwork.co.uk/dump/sde-20260801-TRANQUILITY/eve.db.bz2"
		if got := ArchiveURL(base, "sde-20260801-TRANQUILITY"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("trailing slash is tolerated", func(t *testing.T) {
		t.Parallel()
		want := "https://www.fuzzwork.co.uk/dump/sqlite-latest.sqlite.bz2"
		if got := ArchiveURL(base+"/", LatestVersion); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

// TestChecksumURL verifies checksum URL construction.
func TestChecksumURL(t *testing.T) {
	t.Parallel()

	want := "https://www.fuzzwork.co.uk/dump/sqlite-latest.sqlite.bz2.md5"
	if got := ChecksumURL("https://www.fuzzwork.co.uk/dump"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
