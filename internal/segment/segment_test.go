//go:build withcv
// +build withcv

package segment

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func scene() gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	// Pure red (BGR 0,0,255): hue 0, saturation 255.
	gocv.Circle(&m, image.Pt(60, 60), 30, color.RGBA{R: 255, A: 255}, -1)
	// A smaller red blob that must lose to the sign.
	gocv.Rectangle(&m, image.Rect(130, 10, 140, 20), color.RGBA{R: 255, A: 255}, -1)
	return m
}

func TestSegmentFindsLargestRegion(t *testing.T) {
	img := scene()
	defer img.Close()

	r, err := Segment(img, DefaultParams().WithIterations(2))
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	defer r.Close()

	if len(r.Hull) < 8 {
		t.Fatalf("hull has %d points, want a circle-like polygon", len(r.Hull))
	}
	for _, p := range r.Hull {
		if p.X < 25 || p.X > 95 || p.Y < 25 || p.Y > 95 {
			t.Errorf("hull point %v outside the sign", p)
		}
	}
	if got := gocv.CountNonZero(r.Mask); got == 0 {
		t.Error("mask is empty")
	}
}

func TestSegmentNoRegion(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), 40, 40, gocv.MatTypeCV8UC3)
	defer img.Close()

	r, err := Segment(img, DefaultParams())
	if !errors.Is(err, ErrNoRegion) {
		t.Fatalf("err = %v, want ErrNoRegion", err)
	}
	defer r.Close()
	if r.Hull != nil {
		t.Errorf("hull = %v, want nil", r.Hull)
	}
}

func TestColorLabels(t *testing.T) {
	img := scene()
	defer img.Close()
	r, err := Segment(img, DefaultParams().WithIterations(1))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	out := ColorLabels(r.Mask, 1)
	defer out.Close()
	if out.Rows() != 120 || out.Cols() != 160 || out.Channels() != 3 {
		t.Fatalf("labels image is %dx%dx%d", out.Cols(), out.Rows(), out.Channels())
	}
	// Background stays black.
	if out.GetUCharAt(0, 0) != 0 || out.GetUCharAt(0, 1) != 0 || out.GetUCharAt(0, 2) != 0 {
		t.Error("background is not black")
	}
}

func TestLargestContourKeepsFirstOnTie(t *testing.T) {
	square := func(x, y, side int) []image.Point {
		return []image.Point{{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}}
	}
	contours := gocv.NewPointsVectorFromPoints([][]image.Point{
		square(0, 0, 2),
		square(10, 10, 5),
		square(30, 30, 5),
	})
	defer contours.Close()
	if got := largestContour(contours); got != 1 {
		t.Errorf("largestContour = %d, want 1", got)
	}

	empty := gocv.NewPointsVector()
	defer empty.Close()
	if got := largestContour(empty); got != -1 {
		t.Errorf("largestContour(empty) = %d, want -1", got)
	}
}

func TestHullOfDropsInteriorPoints(t *testing.T) {
	pts := []image.Point{{0, 0}, {4, 0}, {4, 4}, {2, 2}, {0, 4}}
	contour := gocv.NewPointVectorFromPoints(pts)
	defer contour.Close()

	hull := hullOf(contour)
	if len(hull) != 4 {
		t.Fatalf("hull = %v, want the 4 corners", hull)
	}
	for _, p := range hull {
		if p == (image.Point{2, 2}) {
			t.Errorf("hull keeps interior point %v", p)
		}
	}
}
