package image

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "sprite.png")

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(1, 2, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	if err := SavePNG(path, src); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("size = %v, want 4x3", img.Bounds())
	}
	r, g, b, _ := img.At(1, 2).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 30 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("expected unsupported format error")
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected open error")
	}

	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected decode error")
	}
}

func TestFindWithExt(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "R_sprite.jpg")
	if err := os.WriteFile(want, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := FindWithExt(dir, "R_sprite")
	if !ok || got != want {
		t.Errorf("FindWithExt = %q, %v; want %q", got, ok, want)
	}
	if _, ok := FindWithExt(dir, "C_sprite"); ok {
		t.Error("found a file that does not exist")
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for path, want := range map[string]bool{
		"board.TIF": true, "a.jpeg": true, "b.png": true, "c.gif": false, "d": false,
	} {
		if got := IsSupportedFormat(path); got != want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", path, got, want)
		}
	}
}
