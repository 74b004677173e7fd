package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleOutputShape(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info", Format: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With(slog.String("component", "exporter")).Info("wrote deck file",
		slog.Int("bytes", 42),
		slog.String("path", "/tmp/deck dir/cards.csv"))

	line := buf.String()
	if !strings.Contains(line, " INFO exporter: wrote deck file") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "bytes=42") {
		t.Fatalf("missing attr: %q", line)
	}
	if !strings.Contains(line, `path="/tmp/deck dir/cards.csv"`) {
		t.Fatalf("value with spaces must be quoted: %q", line)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("probing", slog.String("video", "a.mkv"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "probing" {
		t.Fatalf("msg = %v", payload["msg"])
	}
	if payload["level"] != "debug" {
		t.Fatalf("level = %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts key: %v", payload)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(&buf, Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
