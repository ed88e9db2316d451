package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects logger output to a buffer for the duration of a test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return buf
}

func TestVerboseToggle(t *testing.T) {
	capture(t)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose after SetVerbose(true)")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected non-verbose after SetVerbose(false)")
	}
}

func TestQuietByDefault(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Debug("loading %s", "corpus")
	Info("loaded %d units", 3)
	Warn("skipping %s", "bad.json")
	Section("Ask")

	if buf.Len() != 0 {
		t.Errorf("expected no output when not verbose, got %q", buf.String())
	}
}

func TestVerboseLevels(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Debug("loading %s", "corpus")
	Info("loaded %d units", 3)
	Warn("skipping %s", "bad.json")

	out := buf.String()
	for _, want := range []string{
		"[DEBUG] loading corpus",
		"[INFO] loaded 3 units",
		"[WARN] skipping bad.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSectionHeader(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Section("Assistant Initialization")

	if !strings.Contains(buf.String(), "=== Assistant Initialization ===") {
		t.Errorf("section header missing: %q", buf.String())
	}
}
