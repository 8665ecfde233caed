//go:build withcv
// +build withcv

package ocr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

func TestClip(t *testing.T) {
	r, ok := clip(geometry.RectInt{X: -5, Y: 90, Width: 20, Height: 20}, 100, 100)
	if !ok || r != image.Rect(0, 90, 15, 100) {
		t.Errorf("clip = %v, %v", r, ok)
	}
	if _, ok := clip(geometry.RectInt{X: 200, Y: 0, Width: 5, Height: 5}, 100, 100); ok {
		t.Error("box outside image not rejected")
	}
}

func TestPreprocessPolarity(t *testing.T) {
	// Light glyph on a dark background.
	region := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(20, 20, 20, 0), 30, 60, gocv.MatTypeCV8UC3)
	defer region.Close()
	gocv.Rectangle(&region, image.Rect(25, 5, 35, 25), color.RGBA{R: 240, G: 240, B: 240, A: 255}, -1)

	out := preprocess(region)
	defer out.Close()
	if out.Rows() != minOCRHeight {
		t.Errorf("rows = %d, want %d", out.Rows(), minOCRHeight)
	}
	if nz := gocv.CountNonZero(out); nz < out.Rows()*out.Cols()/2 {
		t.Errorf("background not light: %d of %d non-zero", nz, out.Rows()*out.Cols())
	}
}

func TestReadDesignatorOutside(t *testing.T) {
	e, err := NewEngine()
	if err != nil {
		t.Skipf("tesseract unavailable: %v", err)
	}
	defer e.Close()
	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer img.Close()
	if _, err := e.ReadDesignator(img, geometry.RectInt{X: 50, Y: 50, Width: 5, Height: 5}); !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("err = %v, want ErrEmptyRegion", err)
	}
}
