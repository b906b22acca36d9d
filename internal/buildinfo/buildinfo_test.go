package buildinfo

import "testing"

func TestShortAndLong(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	cases := []struct {
		version, commit, date string
		short, long           string
	}{
		{"dev", "unknown", "unknown", "dev", "dev"},
		{"dev", "abc123", "unknown", "abc123", "abc123"},
		{"v1.0.0", "abc123", "2026-10-16", "v1.0.0", "v1.0.0 (abc123) built 2026-10-16"},
		{"", "", "", "dev", "dev"},
	}
	for _, tc := range cases {
		Version, Commit, Date = tc.version, tc.commit, tc.date
		if got := Short(); got != tc.short {
			t.Fatalf("Short(%q,%q) = %q, want %q", tc.version, tc.commit, got, tc.short)
		}
		if got := Long(); got != tc.long {
			t.Fatalf("Long(%q,%q,%q) = %q, want %q", tc.version, tc.commit, tc.date, got, tc.long)
		}
	}
}
