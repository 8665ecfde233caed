// Package ocr reads printed component designators (R12, C3, ...) with
// Tesseract.
package ocr

import (
	"errors"
	"fmt"
	"image"

	"visionlab/internal/ocr/designator"
	"visionlab/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// minOCRHeight is the height small regions are upscaled to.
const minOCRHeight = 150

// ErrEmptyRegion is returned when a box does not overlap the image.
var ErrEmptyRegion = errors.New("region outside image")

// Engine provides OCR functionality using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Designators aren't English words; keep Tesseract from "correcting" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetWhitelist(designator.Chars); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}
	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadDesignator returns the uppercase text inside box, with whitespace
// removed. The box is clipped to img.
func (e *Engine) ReadDesignator(img gocv.Mat, box geometry.RectInt) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}
	r, ok := clip(box, img.Cols(), img.Rows())
	if !ok {
		return "", ErrEmptyRegion
	}

	region := img.Region(r)
	defer region.Close()

	processed := preprocess(region)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return designator.Normalize(text), nil
}

// Verify reports whether the designator read inside box belongs to class,
// i.e. starts with the class name. The text read is returned as well.
func (e *Engine) Verify(img gocv.Mat, box geometry.RectInt, class string) (bool, string, error) {
	text, err := e.ReadDesignator(img, box)
	if err != nil {
		return false, "", err
	}
	return designator.Matches(text, class), text, nil
}

func clip(box geometry.RectInt, w, h int) (image.Rectangle, bool) {
	r := box.ToImage().Intersect(image.Rect(0, 0, w, h))
	return r, !r.Empty()
}

// preprocess prepares an image region for OCR: upscale, grayscale, CLAHE,
// Otsu threshold and dark-on-light polarity.
func preprocess(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	scaled := gocv.NewMat()
	defer scaled.Close()
	if d := min(h, w); d < minOCRHeight {
		scale := float64(minOCRHeight) / float64(d)
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		region.CopyTo(&scaled)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if scaled.Channels() == 1 {
		scaled.CopyTo(&gray)
	} else {
		gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	}

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()
	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	// Silkscreen is light on dark; Tesseract wants dark text on light.
	if gocv.CountNonZero(binary) < binary.Rows()*binary.Cols()/2 {
		gocv.BitwiseNot(binary, &binary)
	}
	return binary
}
