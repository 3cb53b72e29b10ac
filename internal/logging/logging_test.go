package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "warn"})
	l.Info("dropped")
	l.Warn("kept", "tool", "circle")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "tool=circle") {
		t.Fatalf("output = %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Config{Format: "json"}).Info("shape committed", "id", "#1")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if rec["msg"] != "shape committed" || rec["id"] != "#1" {
		t.Fatalf("record = %v", rec)
	}
}

func TestOpen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "shapemap.log")
	l, closeFn, err := Open(Config{File: p, Level: "debug"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Debug("map click ignored")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil || !strings.Contains(string(b), "map click ignored") {
		t.Fatalf("log file = %q, %v", b, err)
	}

	l, closeFn, err = Open(Config{})
	if err != nil || l == nil {
		t.Fatalf("Open discard: %v", err)
	}
	l.Error("nowhere")
	_ = closeFn()
}
