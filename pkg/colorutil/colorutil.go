// Package colorutil provides shared color utilities for the vision demos.
package colorutil

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Common overlay colors used throughout the demos. OpenCV draws in BGR, but
// gocv takes color.RGBA and swaps internally, so these are plain RGB.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// HSV is a color in OpenCV's 8-bit convention: H 0-180, S 0-255, V 0-255.
type HSV struct {
	H, S, V float64
}

// Vec returns the color as a feature vector.
func (c HSV) Vec() [3]float64 {
	return [3]float64{c.H, c.S, c.V}
}

// ToHSV converts any color to OpenCV-convention HSV. Fully transparent
// colors convert as black.
func ToHSV(c color.Color) HSV {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return HSV{}
	}
	h, s, v := cf.Hsv()
	return HSV{H: math.Round(h / 2), S: math.Round(s * 255), V: math.Round(v * 255)}
}

// HueIn reports whether hue h (0-180) lies in [lo, hi]. When lo > hi the
// range wraps through 180, as red does.
func HueIn(h, lo, hi float64) bool {
	if lo <= hi {
		return h >= lo && h <= hi
	}
	return h >= lo || h <= hi
}
