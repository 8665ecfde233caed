// Package segment finds strongly saturated red regions, such as traffic
// signs, by thresholding hue and saturation.
package segment

import (
	"errors"
	"image"
	"image/color"
	"math/rand"

	"gocv.io/x/gocv"
)

// ErrNoRegion is returned when the combined mask has no foreground.
var ErrNoRegion = errors.New("no region found")

// Params holds the segmentation trackbar values. Hue is on the OpenCV
// 0-180 scale, so red wraps around: pixels with hue <= HueLow or
// >= HueHigh are kept.
type Params struct {
	HueLow     int
	HueHigh    int
	SatMin     int
	Iterations int // Dilate and erode passes
}

// DefaultParams returns values tuned for red traffic signs.
func DefaultParams() Params {
	return Params{HueLow: 10, HueHigh: 160, SatMin: 240, Iterations: 10}
}

// WithIterations returns a copy with the cleanup iteration count set.
func (p Params) WithIterations(n int) Params {
	p.Iterations = n
	return p
}

// Result holds the intermediate masks and the hull of the largest region.
// Close releases the matrices.
type Result struct {
	HueMask   gocv.Mat
	SatMask   gocv.Mat
	Mask      gocv.Mat // Combined and cleaned
	Hull      []image.Point
	Annotated gocv.Mat // Input with the hull drawn on it
}

// Close releases all matrices of r.
func (r *Result) Close() {
	r.HueMask.Close()
	r.SatMask.Close()
	r.Mask.Close()
	r.Annotated.Close()
}

// HullColor is the colour the hull is drawn in.
var HullColor = color.RGBA{G: 255, A: 255}

// Segment masks img (BGR) by hue and saturation, cleans the mask with a
// closing, and returns the convex hull of its largest external contour.
// Partial results are returned with ErrNoRegion.
func Segment(img gocv.Mat, p Params) (*Result, error) {
	if img.Empty() {
		return nil, errors.New("empty image")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()

	r := &Result{
		HueMask:   gocv.NewMat(),
		SatMask:   gocv.NewMat(),
		Mask:      gocv.NewMat(),
		Annotated: img.Clone(),
	}

	low := gocv.NewMat()
	defer low.Close()
	high := gocv.NewMat()
	defer high.Close()
	gocv.InRangeWithScalar(channels[0], gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(float64(p.HueLow), 0, 0, 0), &low)
	gocv.InRangeWithScalar(channels[0], gocv.NewScalar(float64(p.HueHigh), 0, 0, 0), gocv.NewScalar(180, 0, 0, 0), &high)
	gocv.BitwiseOr(low, high, &r.HueMask)
	gocv.InRangeWithScalar(channels[1], gocv.NewScalar(float64(p.SatMin), 0, 0, 0), gocv.NewScalar(255, 0, 0, 0), &r.SatMask)
	gocv.BitwiseAnd(r.HueMask, r.SatMask, &r.Mask)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
	defer kernel.Close()
	for i := 0; i < p.Iterations; i++ {
		gocv.Dilate(r.Mask, &r.Mask, kernel)
	}
	for i := 0; i < p.Iterations; i++ {
		gocv.Erode(r.Mask, &r.Mask, kernel)
	}

	contours := gocv.FindContours(r.Mask, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()
	largest := largestContour(contours)
	if largest < 0 {
		return r, ErrNoRegion
	}

	r.Hull = hullOf(contours.At(largest))
	hull := gocv.NewPointsVectorFromPoints([][]image.Point{r.Hull})
	defer hull.Close()
	gocv.DrawContours(&r.Annotated, hull, -1, HullColor, 3)
	return r, nil
}

// largestContour returns the index of the contour with the largest area,
// the first one on ties, or -1 when there are none.
func largestContour(contours gocv.PointsVector) int {
	best, bestArea := -1, -1.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > bestArea {
			best, bestArea = i, a
		}
	}
	return best
}

// hullOf returns the convex hull of contour as points of the contour.
func hullOf(contour gocv.PointVector) []image.Point {
	idx := gocv.NewMat()
	defer idx.Close()
	gocv.ConvexHull(contour, &idx, true, false)

	hull := make([]image.Point, 0, idx.Rows())
	for i := 0; i < idx.Rows(); i++ {
		hull = append(hull, contour.At(int(idx.GetIntAt(i, 0))))
	}
	return hull
}

// ColorLabels paints every connected region of mask in its own colour on
// a black background. Colours are stable for a given seed.
func ColorLabels(mask gocv.Mat, seed int64) gocv.Mat {
	labels := gocv.NewMat()
	defer labels.Close()
	n := gocv.ConnectedComponents(mask, &labels)

	rnd := rand.New(rand.NewSource(seed))
	palette := make([][3]uint8, n)
	for i := 1; i < n; i++ {
		palette[i] = [3]uint8{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))}
	}

	out := gocv.NewMatWithSize(mask.Rows(), mask.Cols(), gocv.MatTypeCV8UC3)
	for y := 0; y < labels.Rows(); y++ {
		for x := 0; x < labels.Cols(); x++ {
			c := palette[labels.GetIntAt(y, x)]
			out.SetUCharAt(y, x*3, c[0])
			out.SetUCharAt(y, x*3+1, c[1])
			out.SetUCharAt(y, x*3+2, c[2])
		}
	}
	return out
}
