// Package assembly places component sprites onto a board image. Outlines
// found by connected-component analysis are paired with the nearest
// designator found by template matching, and a sprite for the designator's
// component class is drawn over each outline.
package assembly

import (
	"errors"
	"math"

	"visionlab/pkg/geometry"
)

// ErrNoDesignators is returned when outlines must be paired but no
// designator was detected.
var ErrNoDesignators = errors.New("no designators to pair with")

// Pairing associates an outline with its nearest designator.
type Pairing struct {
	Outline    geometry.RectInt `json:"outline"`
	Designator geometry.RectInt `json:"designator"`
	Distance   float64          `json:"distance"` // center to center, pixels
}

// PairNearest pairs every outline with the designator whose center is
// closest to the outline's center. Centers use floor division. Ties go to
// the designator that comes first in designators. The result has one entry
// per outline, in outline order.
func PairNearest(outlines, designators []geometry.RectInt) ([]Pairing, error) {
	if len(outlines) == 0 {
		return []Pairing{}, nil
	}
	if len(designators) == 0 {
		return nil, ErrNoDesignators
	}

	centers := make([]geometry.PointInt, len(designators))
	for i, d := range designators {
		centers[i] = d.Center()
	}

	pairs := make([]Pairing, len(outlines))
	for i, o := range outlines {
		oc := o.Center()
		best, bestDist := 0, math.Inf(1)
		for j, dc := range centers {
			if d := oc.Distance(dc); d < bestDist {
				best, bestDist = j, d
			}
		}
		pairs[i] = Pairing{Outline: o, Designator: designators[best], Distance: bestDist}
	}
	return pairs, nil
}
