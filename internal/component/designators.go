package component

import (
	"errors"
	"fmt"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrTemplateTooLarge is returned when the template does not fit the scene.
var ErrTemplateTooLarge = errors.New("template larger than scene")

// MatchScores returns the TM_CCORR_NORMED response of tpl over scene,
// min-max normalised to [0,1]. The caller closes the result.
func MatchScores(scene, tpl gocv.Mat) (gocv.Mat, error) {
	if scene.Empty() || tpl.Empty() {
		return gocv.NewMat(), errors.New("empty scene or template")
	}
	if tpl.Cols() > scene.Cols() || tpl.Rows() > scene.Rows() {
		return gocv.NewMat(), ErrTemplateTooLarge
	}

	scores := gocv.NewMat()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(scene, tpl, &scores, gocv.TmCcorrNormed, mask)
	gocv.Normalize(scores, &scores, 0, 1, gocv.NormMinMax)
	return scores, nil
}

// DetectDesignators template-matches tpl over scene and returns one box the
// size of tpl per contour of the thresholded response, positioned at the
// contour's top-left.
func DetectDesignators(scene, tpl gocv.Mat, p DesignatorParams) ([]geometry.RectInt, error) {
	scores, err := MatchScores(scene, tpl)
	if err != nil {
		return nil, fmt.Errorf("could not match designator template: %w", err)
	}
	defer scores.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(scores, &binary, float32(p.Threshold)/100, 255, gocv.ThresholdBinary)
	binary.ConvertTo(&binary, gocv.MatTypeCV8U)

	return boxesAtContours(binary, tpl.Cols(), tpl.Rows()), nil
}

func boxesAtContours(binary gocv.Mat, w, h int) []geometry.RectInt {
	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	boxes := make([]geometry.RectInt, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		tl := gocv.BoundingRect(contours.At(i)).Min
		boxes = append(boxes, geometry.RectInt{X: tl.X, Y: tl.Y, Width: w, Height: h})
	}
	return boxes
}
