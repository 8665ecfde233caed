//go:build withcv
// +build withcv

package tmatch

import (
	"image"
	"image/color"
	"math"
	"testing"

	"visionlab/pkg/geometry"

	"github.com/google/go-cmp/cmp"
	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// pattern is an asymmetric 12x12 glyph.
func pattern() gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 12, 12, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&m, image.Rect(1, 1, 6, 11), white, -1)
	gocv.Rectangle(&m, image.Rect(6, 1, 11, 4), white, -1)
	return m
}

func input(at ...image.Point) gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 80, 100, gocv.MatTypeCV8UC3)
	tpl := pattern()
	defer tpl.Close()
	for _, p := range at {
		roi := m.Region(image.Rect(p.X, p.Y, p.X+12, p.Y+12))
		tpl.CopyTo(&roi)
		roi.Close()
	}
	return m
}

func TestBestAndLocalMaxima(t *testing.T) {
	in := input(image.Pt(10, 15), image.Pt(60, 50))
	defer in.Close()
	tpl := pattern()
	defer tpl.Close()

	best, err := Best(in, tpl)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best.Score != 255 || (best.Box.X != 10 && best.Box.X != 60) {
		t.Errorf("Best = %+v", best)
	}

	got, err := LocalMaxima(in, tpl, DefaultThreshold)
	if err != nil {
		t.Fatalf("LocalMaxima: %v", err)
	}
	var boxes []geometry.RectInt
	for _, m := range got {
		boxes = append(boxes, m.Box)
	}
	want := []geometry.RectInt{
		{X: 10, Y: 15, Width: 12, Height: 12},
		{X: 60, Y: 50, Width: 12, Height: 12},
	}
	if diff := cmp.Diff(want, boxes); diff != "" {
		t.Errorf("LocalMaxima mismatch (-want +got):\n%s", diff)
	}

	all, err := AllAbove(in, tpl, DefaultThreshold)
	if err != nil {
		t.Fatalf("AllAbove: %v", err)
	}
	if len(all) < 2 {
		t.Errorf("AllAbove found %d matches, want at least 2", len(all))
	}
}

func TestTemplateTooLarge(t *testing.T) {
	in := gocv.NewMatWithSize(5, 5, gocv.MatTypeCV8UC3)
	defer in.Close()
	tpl := pattern()
	defer tpl.Close()
	if _, err := Best(in, tpl); err == nil {
		t.Error("expected error")
	}
}

func TestMaxima(t *testing.T) {
	labels := [][]int{
		{0, 1, 1, 0},
		{0, 1, 0, 2},
		{3, 0, 0, 2},
	}
	scores := [][]uint8{
		{9, 5, 7, 0},
		{0, 7, 0, 3},
		{1, 0, 0, 4},
	}
	got := maxima(4, 3, 4,
		func(y, x int) int { return labels[y][x] },
		func(y, x int) uint8 { return scores[y][x] })
	want := []peak{
		{at: image.Pt(2, 0), score: 7, seen: true},
		{at: image.Pt(3, 2), score: 4, seen: true},
		{at: image.Pt(0, 2), score: 1, seen: true},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(peak{})); diff != "" {
		t.Errorf("maxima mismatch (-want +got):\n%s", diff)
	}
	if got := maxima(1, 3, 4, func(y, x int) int { return 0 }, func(y, x int) uint8 { return 0 }); got != nil {
		t.Errorf("background only = %v", got)
	}
}

func TestQuadMapsBack(t *testing.T) {
	center := geometry.Point2D{X: 50, Y: 40}
	m := Match{Box: geometry.RectInt{X: 30, Y: 20, Width: 12, Height: 8}}
	q := quadOf(m, 30, geometry.RotationAbout(center, -30))

	fwd := geometry.RotationAbout(center, 30)
	for i, c := range m.Box.Corners() {
		p := fwd.Apply(q.Corners[i])
		if math.Abs(p.X-c.X) > 1e-9 || math.Abs(p.Y-c.Y) > 1e-9 {
			t.Errorf("corner %d maps to %v, want %v", i, p, c)
		}
	}
	if pts := q.Points(); len(pts) != 4 {
		t.Errorf("Points = %v", pts)
	}
}

func TestRotated(t *testing.T) {
	in := input(image.Pt(40, 30))
	defer in.Close()
	tpl := pattern()
	defer tpl.Close()

	if _, err := Rotated(in, tpl, 10, 0); err == nil {
		t.Error("expected error for zero step")
	}
	quads, err := Rotated(in, tpl, 3, 1)
	if err != nil {
		t.Fatalf("Rotated: %v", err)
	}
	for _, q := range quads {
		if q.Angle < 1 || q.Angle > 3 {
			t.Errorf("quad angle %v out of range", q.Angle)
		}
		if q.Score <= rotatedLevel {
			t.Errorf("quad score %d below level", q.Score)
		}
	}
}

func TestDefaultAnglesStopAtQuarterTurn(t *testing.T) {
	got := angles(DefaultMaxAngle, DefaultStep)
	if len(got) != 90 {
		t.Fatalf("got %d angles, want 90", len(got))
	}
	if got[0] != 1 || got[len(got)-1] != 90 {
		t.Errorf("angles run %v..%v, want 1..90", got[0], got[len(got)-1])
	}
	if n := len(angles(10, 4)); n != 2 {
		t.Errorf("angles(10, 4) has %d entries, want 2", n)
	}
}
