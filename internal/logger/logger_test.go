package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	_ = SetLevel("info")
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	if !strings.Contains(buf.String(), "test message arg") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("added %d documents", 3)
	Warn("dropping %s", "doc-1")
	Error("store failed")

	output := buf.String()
	for _, want := range []string{"added 3 documents", "dropping doc-1", "store failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got %q", want, output)
		}
	}
}

func TestSetLevel(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Info("hidden")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message should be written at warn level")
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Quick links")

	if !strings.Contains(buf.String(), "=== Quick links ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}
