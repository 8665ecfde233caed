//go:build withcv
// +build withcv

package objdetect

import (
	"errors"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestLoadCascadeFails(t *testing.T) {
	if _, err := LoadCascade(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPeople(t *testing.T) {
	d, err := NewPeople(DefaultHOGParams())
	if err != nil {
		t.Fatalf("NewPeople: %v", err)
	}
	defer d.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 90, 90, 0), 80, 60, gocv.MatTypeCV8UC3)
	defer frame.Close()
	prepared := d.Prepare(frame)
	defer prepared.Close()
	if prepared.Cols() != 120 || prepared.Rows() != 160 {
		t.Errorf("prepared size = %dx%d, want 120x160", prepared.Cols(), prepared.Rows())
	}

	people, err := d.Detect(prepared)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(people) != 0 {
		t.Errorf("found %d people in a flat frame", len(people))
	}

	if _, err := d.Detect(gocv.NewMat()); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("err = %v, want ErrEmptyFrame", err)
	}
}

func TestPrepareWithoutUpscale(t *testing.T) {
	d, err := NewPeople(DefaultHOGParams().WithUpscale(1))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	frame := gocv.NewMatWithSize(30, 20, gocv.MatTypeCV8UC3)
	defer frame.Close()
	out := d.Prepare(frame)
	defer out.Close()
	if out.Cols() != 20 || out.Rows() != 30 {
		t.Errorf("size = %dx%d", out.Cols(), out.Rows())
	}
}
