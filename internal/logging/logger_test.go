package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.Info("hello")
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "monitor.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("expected log output in file")
	}
}
