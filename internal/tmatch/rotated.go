package tmatch

import (
	"fmt"
	"image"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Rotation search defaults, in degrees.
const (
	DefaultMaxAngle = 90.0
	DefaultStep     = 1.0
)

// Quad is a template match found in a rotated copy of the input, with its
// corners mapped back to input coordinates. Corners run clockwise from
// the match's top-left.
type Quad struct {
	Corners [4]geometry.Point2D
	Angle   float64 // Rotation of the input the match was found at, degrees
	Score   uint8
}

// Points returns the rounded corners, for drawing.
func (q Quad) Points() []image.Point {
	pts := make([]image.Point, len(q.Corners))
	for i, c := range q.Corners {
		pts[i] = c.Round()
	}
	return pts
}

// Rotated rotates input about its centre by step, 2*step, ... up to
// maxAngle degrees, matches tpl in every rotated copy, and returns the
// per-region maxima at the top score level mapped back into input
// coordinates.
func Rotated(input, tpl gocv.Mat, maxAngle, step float64) ([]Quad, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid angle step %v", step)
	}
	if input.Empty() || tpl.Empty() {
		return nil, fmt.Errorf("empty input or template")
	}

	center := image.Pt(input.Cols()/2, input.Rows()/2)
	size := image.Pt(input.Cols(), input.Rows())
	rotated := gocv.NewMat()
	defer rotated.Close()

	var quads []Quad
	for _, angle := range angles(maxAngle, step) {
		m := gocv.GetRotationMatrix2D(center, angle, 1.0)
		gocv.WarpAffine(input, &rotated, m, size)
		m.Close()

		scores, err := Scores(rotated, tpl)
		if err != nil {
			return nil, fmt.Errorf("could not match at %v degrees: %w", angle, err)
		}
		matches := regionMaxima(scores, rotatedLevel, tpl)
		scores.Close()

		back, ok := geometry.RotationAbout(geometry.PointInt{X: center.X, Y: center.Y}.ToFloat(), angle).Inverse()
		if !ok {
			return nil, fmt.Errorf("rotation by %v degrees is not invertible", angle)
		}
		for _, m := range matches {
			quads = append(quads, quadOf(m, angle, back))
		}
	}
	return quads, nil
}

// angles lists step, 2*step, ... up to and including maxAngle.
func angles(maxAngle, step float64) []float64 {
	var out []float64
	for i := 1; float64(i)*step <= maxAngle; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}

func quadOf(m Match, angle float64, back geometry.AffineTransform) Quad {
	q := Quad{Angle: angle, Score: m.Score}
	for i, c := range m.Box.Corners() {
		q.Corners[i] = back.Apply(c)
	}
	return q
}
