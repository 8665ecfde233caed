// Package track accumulates detection centres over the frames of a video
// and turns them into drawable line segments.
package track

import (
	"visionlab/pkg/geometry"
)

// DefaultMaxGap is the largest jump between consecutive centres that is
// still drawn as part of the track.
const DefaultMaxGap = 10.0

// Segment joins two consecutive track points.
type Segment struct {
	From, To geometry.PointInt
}

// Track is an ordered list of detection centres.
type Track struct {
	points []geometry.PointInt
}

// Add appends the centre of every box, in order.
func (t *Track) Add(boxes ...geometry.RectInt) {
	for _, b := range boxes {
		t.points = append(t.points, b.Center())
	}
}

// Points returns a copy of the recorded centres.
func (t *Track) Points() []geometry.PointInt {
	return append([]geometry.PointInt(nil), t.points...)
}

// Len returns the number of recorded centres.
func (t *Track) Len() int { return len(t.points) }

// Segments returns the pairs of consecutive points that lie strictly closer
// than maxGap. Longer jumps usually mean a detection of another person or
// a false positive, so they break the line.
func (t *Track) Segments(maxGap float64) []Segment {
	var out []Segment
	for i := 1; i < len(t.points); i++ {
		a, b := t.points[i-1], t.points[i]
		if a.Distance(b) < maxGap {
			out = append(out, Segment{From: a, To: b})
		}
	}
	return out
}
