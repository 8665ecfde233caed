//go:build withcv
// +build withcv

package main

import (
	"testing"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

func TestAnnotateLeavesFrameClean(t *testing.T) {
	frame := gocv.NewMatWithSize(40, 40, gocv.MatTypeCV8UC3)
	defer frame.Close()

	box := []geometry.RectInt{{X: 5, Y: 5, Width: 20, Height: 20}}
	out := annotate(frame, box, box)
	defer out.Close()

	if n := drawn(frame); n != 0 {
		t.Errorf("frame has %d drawn samples, want 0", n)
	}
	if n := drawn(out); n == 0 {
		t.Error("annotated copy has no drawn samples")
	}
}

func drawn(m gocv.Mat) int {
	flat := m.Reshape(1, 0)
	defer flat.Close()
	return gocv.CountNonZero(flat)
}
