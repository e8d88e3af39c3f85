package buildinfo

import (
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got, want := Line("asmdeps"), "asmdeps Version v1.2.3"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestString(t *testing.T) {
	got := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
