package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	NewComponentLogger(logger, "enrich").Info("chunk committed",
		Int("chunk", 3),
		String("title", "Modern Times"))

	line := buf.String()
	if !strings.Contains(line, "INFO enrich: chunk committed") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "chunk=3") {
		t.Errorf("missing chunk attr: %q", line)
	}
	if !strings.Contains(line, `title="Modern Times"`) {
		t.Errorf("expected quoted title attr: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("resolved", Int64("movie_id", 352))
	out := buf.String()
	if !strings.Contains(out, `"movie_id":352`) {
		t.Errorf("missing attr in json output: %q", out)
	}
	if !strings.Contains(out, `"ts":`) {
		t.Errorf("missing ts key: %q", out)
	}
}
