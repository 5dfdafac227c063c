package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "ezlatexdoc 1.2.3"},
		{"1.2.3", "abc123", "", "ezlatexdoc 1.2.3 (commit abc123)"},
		{"0.1.0-dev", "abc123", "2024-01-15", "ezlatexdoc 0.1.0-dev (commit abc123, built 2024-01-15)"},
		{"0.1.0", "", "2024-01-15T10:30:00Z", "ezlatexdoc 0.1.0 (built 2024-01-15T10:30:00Z)"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, tt.commit, tt.date)
		if got := Line(false); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.123", "1.0", "dev"} {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() without colour = %q, want %q", got, v)
		}
	}
}

// BenchmarkLine benchmarks rendering the version line
func BenchmarkLine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Line(false)
	}
}
