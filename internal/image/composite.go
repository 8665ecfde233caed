package image

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
)

// BlendMode specifies how an overlay is combined with the image below it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDifference
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// Blend combines src over dst in place, aligning the top-left corners of
// both, and mixes the result with dst by opacity in [0, 1]. Pixels outside
// either image are left alone.
func Blend(dst *image.RGBA, src image.Image, mode BlendMode, opacity float64) {
	var mixed *image.RGBA
	switch mode {
	case BlendMultiply:
		mixed = blend.Multiply(dst, src)
	case BlendScreen:
		mixed = blend.Screen(dst, src)
	case BlendOverlay:
		mixed = blend.Overlay(dst, src)
	case BlendDifference:
		mixed = blend.Difference(dst, src)
	default:
		mixed = blend.Normal(dst, src)
	}
	out := blend.Opacity(dst, mixed, clamp(opacity, 0, 1))
	r := out.Bounds()
	draw.Draw(dst, image.Rectangle{Min: dst.Bounds().Min, Max: dst.Bounds().Min.Add(r.Size())}, out, r.Min, draw.Src)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
