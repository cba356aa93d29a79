package buildinfo

import "testing"

func TestShortPrefersVersionThenCommit(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	tests := []struct {
		version, commit, want string
	}{
		{"1.2.0", "abc123", "1.2.0"},
		{"dev", "abc123", "abc123"},
		{"", "unknown", "dev"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with version=%q commit=%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
