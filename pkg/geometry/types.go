// Package geometry provides basic geometric types used throughout the demos.
package geometry

import (
	"image"
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Round returns the nearest integer point.
func (p Point2D) Round() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// ToImage converts to an image.Point.
func (p PointInt) ToImage() image.Point {
	return image.Pt(p.X, p.Y)
}

// Distance returns the Euclidean distance to another integer point.
func (p PointInt) Distance(other PointInt) float64 {
	return p.ToFloat().Distance(other.ToFloat())
}

// RectInt is an axis-aligned pixel rectangle. It is the bounding box type
// produced by every detector.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromImage converts an image.Rectangle to a RectInt.
func RectFromImage(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ToImage converts to an image.Rectangle.
func (r RectInt) ToImage() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Center returns the rectangle center using integer (floor) division.
func (r RectInt) Center() PointInt {
	return PointInt{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// In reports whether r lies entirely inside bounds.
func (r RectInt) In(bounds image.Rectangle) bool {
	return r.ToImage().In(bounds)
}

// Corners returns the four corners clockwise from the top-left.
func (r RectInt) Corners() [4]Point2D {
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.Width), float64(r.Height)
	return [4]Point2D{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// ToFloat converts to Rect.
func (r RectInt) ToFloat() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// RotationAbout returns the rotation of angle degrees about center, using the
// image convention of getRotationMatrix2D: positive angles turn
// counter-clockwise on screen (y grows downwards).
func RotationAbout(center Point2D, degrees float64) AffineTransform {
	rad := degrees * math.Pi / 180
	alpha := math.Cos(rad)
	beta := math.Sin(rad)
	return AffineTransform{
		A: alpha, B: beta, TX: (1-alpha)*center.X - beta*center.Y,
		C: -beta, D: alpha, TY: beta*center.X + (1-alpha)*center.Y,
	}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-10 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}

// Homography is a 3x3 projective transform in row-major order.
type Homography [3][3]float64

// Apply projects p. The second return is false when p maps to infinity.
func (h Homography) Apply(p Point2D) (Point2D, bool) {
	w := h[2][0]*p.X + h[2][1]*p.Y + h[2][2]
	if math.Abs(w) < 1e-12 {
		return Point2D{}, false
	}
	return Point2D{
		X: (h[0][0]*p.X + h[0][1]*p.Y + h[0][2]) / w,
		Y: (h[1][0]*p.X + h[1][1]*p.Y + h[1][2]) / w,
	}, true
}

// LinePoints rasterises the segment a-b with Bresenham's algorithm,
// endpoints included.
func LinePoints(a, b PointInt) []PointInt {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	pts := make([]PointInt, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		pts = append(pts, PointInt{X: x, Y: y})
		if x == b.X && y == b.Y {
			return pts
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
