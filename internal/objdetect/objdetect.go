// Package objdetect wraps the OpenCV cascade classifiers (Haar, LBP) and the
// HOG people detector.
package objdetect

import (
	"errors"
	"fmt"
	"image"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned for frames without pixels.
var ErrEmptyFrame = errors.New("empty frame")

// Cascade is a loaded Haar or LBP cascade classifier.
type Cascade struct {
	Name string
	cc   gocv.CascadeClassifier
}

// LoadCascade loads the cascade XML at path. Missing or invalid files fail.
func LoadCascade(path string) (*Cascade, error) {
	cc := gocv.NewCascadeClassifier()
	if !cc.Load(path) {
		cc.Close()
		return nil, fmt.Errorf("could not load cascade %s", path)
	}
	return &Cascade{Name: path, cc: cc}, nil
}

// Close releases the classifier.
func (c *Cascade) Close() error { return c.cc.Close() }

// Detect returns the objects found in frame.
func (c *Cascade) Detect(frame gocv.Mat) ([]geometry.RectInt, error) {
	if frame.Empty() {
		return nil, ErrEmptyFrame
	}
	return toRects(c.cc.DetectMultiScale(frame)), nil
}

// HOGParams are the multi-scale HOG detection settings.
type HOGParams struct {
	HitThreshold   float64
	WinStride      int
	Padding        int
	Scale          float64
	FinalThreshold float64
	Upscale        int // Frames are enlarged by this factor before detection
}

// DefaultHOGParams returns the classic people detection settings on frames
// enlarged twice.
func DefaultHOGParams() HOGParams {
	return HOGParams{
		HitThreshold:   0,
		WinStride:      8,
		Padding:        32,
		Scale:          1.05,
		FinalThreshold: 2,
		Upscale:        2,
	}
}

// WithUpscale returns a copy with the upscale factor set.
func (p HOGParams) WithUpscale(f int) HOGParams {
	p.Upscale = f
	return p
}

// People detects standing people with the default HOG people SVM.
type People struct {
	Params HOGParams
	hog    gocv.HOGDescriptor
}

// NewPeople returns a HOG detector loaded with the default people model.
func NewPeople(p HOGParams) (*People, error) {
	hog := gocv.NewHOGDescriptor()
	det := gocv.HOGDefaultPeopleDetector()
	defer det.Close()
	if err := hog.SetSVMDetector(det); err != nil {
		hog.Close()
		return nil, fmt.Errorf("could not set people detector: %w", err)
	}
	return &People{Params: p, hog: hog}, nil
}

// Close releases the descriptor.
func (d *People) Close() error { return d.hog.Close() }

// Prepare returns the frame detection runs on: a copy of frame enlarged
// by Params.Upscale. The caller closes the result.
func (d *People) Prepare(frame gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	if d.Params.Upscale > 1 {
		sz := image.Pt(frame.Cols()*d.Params.Upscale, frame.Rows()*d.Params.Upscale)
		gocv.Resize(frame, &out, sz, 0, 0, gocv.InterpolationLinear)
	} else {
		frame.CopyTo(&out)
	}
	return out
}

// Detect returns the people in a prepared frame, in its coordinates.
func (d *People) Detect(prepared gocv.Mat) ([]geometry.RectInt, error) {
	if prepared.Empty() {
		return nil, ErrEmptyFrame
	}
	p := d.Params
	rects := d.hog.DetectMultiScaleWithParams(prepared, p.HitThreshold,
		image.Pt(p.WinStride, p.WinStride), image.Pt(p.Padding, p.Padding),
		p.Scale, p.FinalThreshold, false)
	return toRects(rects), nil
}

func toRects(rs []image.Rectangle) []geometry.RectInt {
	out := make([]geometry.RectInt, len(rs))
	for i, r := range rs {
		out[i] = geometry.RectFromImage(r)
	}
	return out
}
