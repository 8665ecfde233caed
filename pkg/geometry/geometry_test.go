package geometry

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRectIntCenterFloors(t *testing.T) {
	tests := []struct {
		r    RectInt
		want PointInt
	}{
		{RectInt{0, 0, 10, 10}, PointInt{5, 5}},
		{RectInt{1, 1, 3, 3}, PointInt{2, 2}},
		{RectInt{100, 100, 2, 2}, PointInt{101, 101}},
		{RectInt{0, 0, 1, 1}, PointInt{0, 0}},
		{RectInt{4, 7, 5, 0}, PointInt{6, 7}},
	}
	for _, tt := range tests {
		if got := tt.r.Center(); got != tt.want {
			t.Errorf("%+v.Center() = %+v, want %+v", tt.r, got, tt.want)
		}
	}
}

func TestRectIntIn(t *testing.T) {
	bounds := image.Rect(0, 0, 20, 10)
	tests := []struct {
		r    RectInt
		want bool
	}{
		{RectInt{0, 0, 20, 10}, true},
		{RectInt{5, 5, 5, 5}, true},
		{RectInt{15, 0, 6, 5}, false},
		{RectInt{-1, 0, 5, 5}, false},
		{RectInt{0, 8, 5, 3}, false},
	}
	for _, tt := range tests {
		if got := tt.r.In(bounds); got != tt.want {
			t.Errorf("%+v.In(%v) = %v, want %v", tt.r, bounds, got, tt.want)
		}
	}
}

func TestRectImageRoundTrip(t *testing.T) {
	r := RectInt{X: 3, Y: 4, Width: 7, Height: 9}
	if got := RectFromImage(r.ToImage()); got != r {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
}

func TestRotationAboutMatchesInverse(t *testing.T) {
	c := Point2D{X: 50, Y: 40}
	rot := RotationAbout(c, 30)
	back := RotationAbout(c, -30)

	p := Point2D{X: 12, Y: 77}
	got := back.Apply(rot.Apply(p))
	if got.Distance(p) > 1e-9 {
		t.Errorf("rotate +30 then -30 = %+v, want %+v", got, p)
	}

	inv, ok := rot.Inverse()
	if !ok {
		t.Fatal("rotation should be invertible")
	}
	if d := inv.Apply(rot.Apply(p)).Distance(p); d > 1e-9 {
		t.Errorf("inverse residual %g", d)
	}

	if got := rot.Apply(c); got.Distance(c) > 1e-9 {
		t.Errorf("center moved to %+v", got)
	}
}

func TestRotationAboutDirection(t *testing.T) {
	// A point right of the center ends up above it (smaller y) after +90.
	got := RotationAbout(Point2D{}, 90).Apply(Point2D{X: 10})
	want := Point2D{X: 0, Y: -10}
	if got.Distance(want) > 1e-9 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestHomographyApply(t *testing.T) {
	h := Homography{{2, 0, 1}, {0, 2, 3}, {0, 0, 1}}
	got, ok := h.Apply(Point2D{X: 1, Y: 1})
	if !ok || got != (Point2D{X: 3, Y: 5}) {
		t.Errorf("got %+v %v", got, ok)
	}

	if _, ok := (Homography{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}}).Apply(Point2D{}); ok {
		t.Error("expected point at infinity")
	}
}

func TestLinePoints(t *testing.T) {
	tests := []struct {
		name string
		a, b PointInt
		want []PointInt
	}{
		{"single", PointInt{2, 2}, PointInt{2, 2}, []PointInt{{2, 2}}},
		{"horizontal", PointInt{0, 0}, PointInt{3, 0}, []PointInt{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"reverse vertical", PointInt{1, 2}, PointInt{1, 0}, []PointInt{{1, 2}, {1, 1}, {1, 0}}},
		{"diagonal", PointInt{0, 0}, PointInt{2, 2}, []PointInt{{0, 0}, {1, 1}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, LinePoints(tt.a, tt.b)); diff != "" {
				t.Errorf("LinePoints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
