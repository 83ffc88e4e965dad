package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"daybook-hq/daybook/pkg/config"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Slog().Info("diary entry created", "user_id", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "diary entry created" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["user_id"] != float64(7) {
		t.Errorf("user_id = %v", record["user_id"])
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Slog().Info("listening", "address", "127.0.0.1:8080")
	if !strings.Contains(buf.String(), "msg=listening") {
		t.Errorf("text output missing message: %q", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Slog().Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %q", buf.String())
	}

	l.Slog().Warn("emitted")
	if buf.Len() == 0 {
		t.Error("warn record suppressed at warn level")
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Slog().Debug("before")
	if buf.Len() != 0 {
		t.Fatal("debug record emitted at info level")
	}

	if err := l.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	if l.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", l.Level())
	}

	l.Slog().Debug("after")
	if buf.Len() == 0 {
		t.Error("debug record suppressed after SetLevel(debug)")
	}

	if err := l.SetLevel("noisy"); err == nil {
		t.Error("expected error for unknown level")
	}
	if l.Level() != slog.LevelDebug {
		t.Error("failed SetLevel changed the level")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "trace", Format: "json"}, nil); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "logfmt"}, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
