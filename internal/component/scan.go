package component

import (
	"fmt"

	"visionlab/pkg/geometry"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
)

// Verifier confirms that box on img holds a designator of class, returning
// the text it read.
type Verifier interface {
	Verify(img gocv.Mat, box geometry.RectInt, class string) (bool, string, error)
}

// Detection is a designator box and the class whose template found it.
type Detection struct {
	Box   geometry.RectInt
	Class *Class
}

// Scan is the result of one pass over a board.
type Scan struct {
	Designators []Detection
	Rejected    []geometry.RectInt // Found by a template but refused by the verifier
	Outlines    []geometry.RectInt
}

// Boxes returns the designator boxes in detection order and the class of
// each box. A box found by several classes belongs to the first.
func (s *Scan) Boxes() ([]geometry.RectInt, map[geometry.RectInt]*Class) {
	boxes := make([]geometry.RectInt, len(s.Designators))
	classOf := make(map[geometry.RectInt]*Class, len(s.Designators))
	for i, d := range s.Designators {
		boxes[i] = d.Box
		if _, ok := classOf[d.Box]; !ok {
			classOf[d.Box] = d.Class
		}
	}
	return boxes, classOf
}

// Scanner finds the designators of every class and the component outlines
// on a board. Verifier is optional.
type Scanner struct {
	Log      logging.Logger
	Verifier Verifier
}

// Scan runs designator detection for each class, then outline detection.
// A class whose template does not fit is logged and skipped.
func (s *Scanner) Scan(board gocv.Mat, classes []*Class, dp DesignatorParams, op OutlineParams) (*Scan, error) {
	res := &Scan{}
	for _, c := range classes {
		boxes, err := DetectDesignators(board, c.Template, dp)
		if err != nil {
			s.Log.Warning("designator detection failed", "class", c.Name, "error", err)
			continue
		}
		for _, b := range boxes {
			if s.Verifier != nil {
				ok, text, err := s.Verifier.Verify(board, b, c.Name)
				if err != nil || !ok {
					s.Log.Debug("designator rejected", "class", c.Name, "text", text, "box", b, "error", err)
					res.Rejected = append(res.Rejected, b)
					continue
				}
			}
			res.Designators = append(res.Designators, Detection{Box: b, Class: c})
		}
	}

	outlines, err := DetectOutlines(board, op)
	if err != nil {
		return res, fmt.Errorf("could not detect outlines: %w", err)
	}
	res.Outlines = outlines
	s.Log.Debug("scanned", "designators", len(res.Designators), "rejected", len(res.Rejected), "outlines", len(outlines))
	return res, nil
}
