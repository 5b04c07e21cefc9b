package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "treemenu.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONOnlyWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file while tracing is off, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("menu.key", map[string]interface{}{"key": "down"})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "menu.key" || entry.Payload["key"] != "down" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestErrorAppendsLines(t *testing.T) {
	path := useTempLog(t)
	Error(nil)
	Error(errors.New("first"))
	Error(errors.New("second"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second") {
		t.Fatalf("unexpected log contents %q", string(data))
	}
}

func TestConfigureEmptyRestoresDefault(t *testing.T) {
	useTempLog(t)
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}
