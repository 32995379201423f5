package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWriteEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.hm")
	if err := os.WriteFile(path, []byte("42"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := os.WriteFile(path, []byte("43"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case ev := <-w.Events():
		if ev.Path != path {
			t.Fatalf("expected event for %s, got %s", path, ev.Path)
		}
	case err := <-w.Errors():
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a write event")
	}
}
