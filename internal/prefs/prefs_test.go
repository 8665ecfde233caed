package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hsvsegment.json")

	p := LoadFile(path)
	if got := p.Int("hue_low", 10); got != 10 {
		t.Errorf("fallback = %d, want 10", got)
	}
	p.SetInt("hue_low", 17)
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := LoadFile(path)
	if got := q.Int("hue_low", 10); got != 17 {
		t.Errorf("Int = %d, want 17", got)
	}
}

func TestCorruptFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadFile(path).Int("x", 5); got != 5 {
		t.Errorf("Int = %d, want fallback 5", got)
	}
}

func TestNonObjectFileGivesDefaults(t *testing.T) {
	for _, content := range []string{"null", "[1,2]", `"x"`} {
		path := filepath.Join(t.TempDir(), "prefs.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		p := LoadFile(path)
		p.SetInt("threshold", 70)
		if got := p.Int("threshold", 0); got != 70 {
			t.Errorf("%s: Int = %d, want 70", content, got)
		}
		if err := p.Save(); err != nil {
			t.Errorf("%s: Save: %v", content, err)
		}
		if got := LoadFile(path).Int("threshold", 0); got != 70 {
			t.Errorf("%s: reloaded Int = %d, want 70", content, got)
		}
	}
}

func TestStringValueGivesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"algo":"orb"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadFile(path).Int("algo", 3); got != 3 {
		t.Errorf("Int of string value = %d, want fallback", got)
	}
}

func TestMemoryDoesNotWrite(t *testing.T) {
	p := Memory()
	p.SetInt("k", 1)
	if err := p.Save(); err != nil {
		t.Errorf("Save: %v", err)
	}
	if got := p.Int("k", 0); got != 1 {
		t.Errorf("Int = %d, want 1", got)
	}
}

func TestPath(t *testing.T) {
	got := Path("tplmatch")
	if !strings.HasSuffix(got, filepath.Join("visionlab", "tplmatch.json")) {
		t.Errorf("Path = %q", got)
	}
}
