package app

import (
	"flag"
	"path/filepath"
	"testing"
)

func TestRegisterFlags(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	o := RegisterFlags(fs)
	if err := fs.Parse([]string{"-v", "debug", "-noprefs", "-log", "/tmp/x.log"}); err != nil {
		t.Fatal(err)
	}
	if o.Level != "debug" || !o.NoPrefs || o.LogPath != "/tmp/x.log" {
		t.Errorf("options = %+v", o)
	}
}

func TestStartNoPrefs(t *testing.T) {
	o := &Options{Level: "error", LogPath: filepath.Join(t.TempDir(), "demo.log"), NoPrefs: true}
	e, err := Start("demo", o)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.Prefs.SetInt("threshold", 42)
	if got := e.Prefs.Int("threshold", 0); got != 42 {
		t.Errorf("threshold = %d", got)
	}
	e.Close()
}

func TestStartBadLevel(t *testing.T) {
	if _, err := Start("demo", &Options{Level: "shout"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
