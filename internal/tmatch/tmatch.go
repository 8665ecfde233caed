// Package tmatch locates a template in an image with normalised
// cross-correlation: every match above a threshold, the single best match,
// the best match per region, and matches under rotation.
package tmatch

import (
	"errors"
	"fmt"
	"image"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// DefaultThreshold is the fraction of the normalised score a pixel must
// exceed to count as a match.
const DefaultThreshold = 0.96

// rotatedLevel is the 8-bit score a rotated match must exceed.
const rotatedLevel = 254

// ErrTemplateTooLarge is returned when the template does not fit the input.
var ErrTemplateTooLarge = errors.New("template larger than input")

// Match is a template-sized box and its 8-bit normalised score.
type Match struct {
	Box   geometry.RectInt
	Score uint8
}

// Scores returns the TM_CCORR_NORMED response of tpl over input, min-max
// normalised to 0-255 as an 8-bit matrix. The caller closes the result.
func Scores(input, tpl gocv.Mat) (gocv.Mat, error) {
	if input.Empty() || tpl.Empty() {
		return gocv.NewMat(), errors.New("empty input or template")
	}
	if tpl.Cols() > input.Cols() || tpl.Rows() > input.Rows() {
		return gocv.NewMat(), ErrTemplateTooLarge
	}

	raw := gocv.NewMat()
	defer raw.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(input, tpl, &raw, gocv.TmCcorrNormed, mask)
	gocv.Normalize(raw, &raw, 0, 255, gocv.NormMinMax)

	scores := gocv.NewMat()
	raw.ConvertTo(&scores, gocv.MatTypeCV8U)
	return scores, nil
}

// thresholdMask returns the pixels of scores strictly above level.
func thresholdMask(scores gocv.Mat, level float32) gocv.Mat {
	mask := gocv.NewMat()
	gocv.Threshold(scores, &mask, level, 255, gocv.ThresholdBinary)
	return mask
}

func level(threshold float64) float32 {
	return float32(threshold * 255)
}

// AllAbove returns a box at every pixel whose score exceeds threshold
// (0-1), in raster order.
func AllAbove(input, tpl gocv.Mat, threshold float64) ([]Match, error) {
	scores, err := Scores(input, tpl)
	if err != nil {
		return nil, fmt.Errorf("could not match template: %w", err)
	}
	defer scores.Close()

	var out []Match
	lvl := level(threshold)
	for y := 0; y < scores.Rows(); y++ {
		for x := 0; x < scores.Cols(); x++ {
			if s := scores.GetUCharAt(y, x); float32(s) > lvl {
				out = append(out, Match{Box: box(image.Pt(x, y), tpl), Score: s})
			}
		}
	}
	return out, nil
}

// Best returns the box at the global maximum of the score.
func Best(input, tpl gocv.Mat) (Match, error) {
	scores, err := Scores(input, tpl)
	if err != nil {
		return Match{}, fmt.Errorf("could not match template: %w", err)
	}
	defer scores.Close()

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(scores)
	return Match{Box: box(maxLoc, tpl), Score: uint8(maxVal)}, nil
}

// LocalMaxima returns one box per connected region of scores above
// threshold, at the region's maximum.
func LocalMaxima(input, tpl gocv.Mat, threshold float64) ([]Match, error) {
	scores, err := Scores(input, tpl)
	if err != nil {
		return nil, fmt.Errorf("could not match template: %w", err)
	}
	defer scores.Close()
	return regionMaxima(scores, level(threshold), tpl), nil
}

func regionMaxima(scores gocv.Mat, lvl float32, tpl gocv.Mat) []Match {
	mask := thresholdMask(scores, lvl)
	defer mask.Close()
	labels := gocv.NewMat()
	defer labels.Close()
	n := gocv.ConnectedComponents(mask, &labels)

	peaks := maxima(n, scores.Rows(), scores.Cols(),
		func(y, x int) int { return int(labels.GetIntAt(y, x)) },
		func(y, x int) uint8 { return scores.GetUCharAt(y, x) })

	out := make([]Match, 0, len(peaks))
	for _, p := range peaks {
		out = append(out, Match{Box: box(p.at, tpl), Score: p.score})
	}
	return out
}

type peak struct {
	at    image.Point
	score uint8
	seen  bool
}

// maxima returns the first maximum in raster order of each foreground
// label 1..n-1.
func maxima(n, rows, cols int, label func(y, x int) int, score func(y, x int) uint8) []peak {
	if n < 2 {
		return nil
	}
	peaks := make([]peak, n)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			l := label(y, x)
			if l <= 0 || l >= n {
				continue
			}
			s := score(y, x)
			if !peaks[l].seen || s > peaks[l].score {
				peaks[l] = peak{at: image.Pt(x, y), score: s, seen: true}
			}
		}
	}
	var out []peak
	for _, p := range peaks[1:] {
		if p.seen {
			out = append(out, p)
		}
	}
	return out
}

func box(at image.Point, tpl gocv.Mat) geometry.RectInt {
	return geometry.RectInt{X: at.X, Y: at.Y, Width: tpl.Cols(), Height: tpl.Rows()}
}
