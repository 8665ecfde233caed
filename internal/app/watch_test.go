package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
)

func TestDirWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := WatchDir(dir, (*logging.TestLogger)(t))
	if err != nil {
		t.Fatalf("WatchDir: %v", err)
	}
	defer w.Close()

	if w.Changed() {
		t.Fatal("changed before any write")
	}
	if err := os.WriteFile(filepath.Join(dir, "R.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !w.Changed() {
		if time.Now().After(deadline) {
			t.Fatal("new file not noticed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if w.Changed() {
		t.Error("Changed did not reset")
	}
}

func TestWatchDirMissing(t *testing.T) {
	if _, err := WatchDir(filepath.Join(t.TempDir(), "missing"), (*logging.TestLogger)(t)); err == nil {
		t.Error("expected error for missing directory")
	}
}
