package version

import "testing"

func TestIsDev(t *testing.T) {
	// Save original value
	original := Version
	defer func() { Version = original }()

	tests := []struct {
		version  string
		expected bool
	}{
		{"dev", true},
		{"1.0.0", false},
		{"0.1.0", false},
		{"v1.2.3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			Version = tt.version
			if got := IsDev(); got != tt.expected {
				t.Errorf("IsDev() with Version=%q = %v, want %v", tt.version, got, tt.expected)
			}
		})
	}
}

func TestFull(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "dev"
	if got := Full(); got != "dateperiod version dev (built from source)" {
		t.Errorf("Full() with dev = %q, want %q", got, "dateperiod version dev (built from source)")
	}

	Version = "1.2.3"
	if got := Full(); got != "dateperiod version 1.2.3" {
		t.Errorf("Full() with 1.2.3 = %q, want %q", got, "dateperiod version 1.2.3")
	}
}

func TestShort(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "1.0.0", "none"
	if got := Short(); got != "1.0.0" {
		t.Errorf("Short() without commit = %q", got)
	}

	Commit = "0123456789abcdef"
	if got := Short(); got != "1.0.0 (0123456)" {
		t.Errorf("Short() with commit = %q", got)
	}
}

func TestInfo(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "2.0.0"
	info := Info()
	if info["version"] != "2.0.0" {
		t.Errorf("Info()[version] = %v", info["version"])
	}
	if info["dev"] != false {
		t.Errorf("Info()[dev] = %v, want false", info["dev"])
	}
}
