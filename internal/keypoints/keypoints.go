// Package keypoints detects binary feature keypoints, matches them by brute
// force and locates a template in a scene through a RANSAC homography.
package keypoints

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"visionlab/internal/matching"
	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Algo names a keypoint detector and descriptor.
type Algo int

const (
	ORB Algo = iota
	BRISK
	AKAZE
)

// Algos lists every supported algorithm.
var Algos = []Algo{ORB, BRISK, AKAZE}

func (a Algo) String() string {
	switch a {
	case ORB:
		return "ORB"
	case BRISK:
		return "BRISK"
	case AKAZE:
		return "AKAZE"
	default:
		return "Unknown"
	}
}

// ParseAlgo parses an algorithm name, ignoring case.
func ParseAlgo(s string) (Algo, error) {
	for _, a := range Algos {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown keypoint algorithm %q", s)
}

// Norm is the descriptor distance used by Match. All supported algorithms
// produce binary descriptors, compared by Hamming distance.
const Norm = gocv.NormHamming

// ErrTooFewMatches is returned when fewer than four matches are available
// to estimate a homography.
var ErrTooFewMatches = errors.New("need at least 4 matches")

// ransacReprojThreshold is the inlier distance in pixels.
const ransacReprojThreshold = 3.0

// Features are the keypoints and descriptors of one image. Close releases
// the descriptor matrix.
type Features struct {
	Algo        Algo
	Keys        []gocv.KeyPoint
	Descriptors gocv.Mat
}

// Close releases the descriptors.
func (f *Features) Close() error { return f.Descriptors.Close() }

// Detect finds keypoints in img and computes their descriptors.
func Detect(img gocv.Mat, algo Algo) (*Features, error) {
	if img.Empty() {
		return nil, errors.New("empty image")
	}
	mask := gocv.NewMat()
	defer mask.Close()

	f := &Features{Algo: algo}
	switch algo {
	case ORB:
		d := gocv.NewORB()
		defer d.Close()
		f.Keys, f.Descriptors = d.DetectAndCompute(img, mask)
	case BRISK:
		d := gocv.NewBRISK()
		defer d.Close()
		f.Keys, f.Descriptors = d.DetectAndCompute(img, mask)
	case AKAZE:
		d := gocv.NewAKAZE()
		defer d.Close()
		f.Keys, f.Descriptors = d.DetectAndCompute(img, mask)
	default:
		return nil, fmt.Errorf("unsupported algorithm %v", algo)
	}
	return f, nil
}

// Match pairs every query descriptor with its nearest train descriptor
// under norm. Pass Norm unless the descriptors are not binary.
func Match(query, train *Features, norm gocv.NormType) []matching.Match {
	if query.Descriptors.Empty() || train.Descriptors.Empty() {
		return nil
	}
	bf := gocv.NewBFMatcherWithParams(norm, false)
	defer bf.Close()

	var out []matching.Match
	for _, nn := range bf.KnnMatch(query.Descriptors, train.Descriptors, 1) {
		if len(nn) == 0 {
			continue
		}
		out = append(out, matching.Match{
			Query:    nn[0].QueryIdx,
			Train:    nn[0].TrainIdx,
			Distance: nn[0].Distance,
		})
	}
	return out
}

// Location is a template found in a scene.
type Location struct {
	H       geometry.Homography
	Corners [4]geometry.Point2D // Template corners in the scene, clockwise from top-left
}

// Points returns the rounded corners, for drawing.
func (l *Location) Points() []image.Point {
	pts := make([]image.Point, len(l.Corners))
	for i, c := range l.Corners {
		pts[i] = c.Round()
	}
	return pts
}

// Locate estimates the template-to-scene homography from matches with
// RANSAC and projects the template corners into the scene.
func Locate(tplKeys, sceneKeys []gocv.KeyPoint, matches []matching.Match, tplSize image.Point) (*Location, error) {
	if len(matches) < 4 {
		return nil, ErrTooFewMatches
	}

	src := gocv.NewMatWithSize(len(matches), 1, gocv.MatTypeCV64FC2)
	defer src.Close()
	dst := gocv.NewMatWithSize(len(matches), 1, gocv.MatTypeCV64FC2)
	defer dst.Close()
	for i, m := range matches {
		if m.Query >= len(tplKeys) || m.Train >= len(sceneKeys) {
			return nil, fmt.Errorf("match %d refers to a missing keypoint", i)
		}
		q, t := tplKeys[m.Query], sceneKeys[m.Train]
		src.SetDoubleAt(i, 0, q.X)
		src.SetDoubleAt(i, 1, q.Y)
		dst.SetDoubleAt(i, 0, t.X)
		dst.SetDoubleAt(i, 1, t.Y)
	}

	inliers := gocv.NewMat()
	defer inliers.Close()
	hm := gocv.FindHomography(src, &dst, gocv.HomograpyMethodRANSAC, ransacReprojThreshold, &inliers, 2000, 0.995)
	defer hm.Close()
	if hm.Empty() {
		return nil, errors.New("no homography found")
	}

	var h geometry.Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			h[r][c] = hm.GetDoubleAt(r, c)
		}
	}
	return Project(h, tplSize)
}

// Project maps the corners of a template of the given size through h.
func Project(h geometry.Homography, size image.Point) (*Location, error) {
	loc := &Location{H: h}
	tpl := geometry.RectInt{Width: size.X, Height: size.Y}
	for i, c := range tpl.Corners() {
		p, ok := h.Apply(c)
		if !ok {
			return nil, errors.New("template corner projects to infinity")
		}
		loc.Corners[i] = p
	}
	return loc, nil
}
