package pixelclass

import (
	"image"
	"image/color"
	"image/draw"

	"visionlab/pkg/colorutil"

	"github.com/disintegration/imaging"
)

// SmoothSigma matches a 5x5 Gaussian kernel with automatic sigma. Smoothing
// before sampling keeps single odd pixels from dominating a click.
const SmoothSigma = 1.1

// Smooth returns a Gaussian-blurred copy of img.
func Smooth(img image.Image) *image.NRGBA {
	return imaging.Blur(img, SmoothSigma)
}

// FeatureOf returns the HSV feature of a colour.
func FeatureOf(c color.Color) Feature {
	return Feature(colorutil.ToHSV(c).Vec())
}

// SamplesFromRects labels every pixel inside rects (clipped to img) with
// label. Overlapping rectangles contribute duplicates.
func SamplesFromRects(img image.Image, rects []image.Rectangle, label int) []Sample {
	var out []Sample
	for _, r := range rects {
		r = r.Intersect(img.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				out = append(out, Sample{Feature: FeatureOf(img.At(x, y)), Label: label})
			}
		}
	}
	return out
}

// Apply classifies every pixel of img. Foreground pixels keep their colour;
// everything else is black.
func Apply(img image.Image, c Classifier) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(colorutil.Black), image.Point{}, draw.Src)

	cache := make(map[Feature]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.At(x, y)
			f := FeatureOf(px)
			label, ok := cache[f]
			if !ok {
				label = c.Predict(f)
				cache[f] = label
			}
			if label == Foreground {
				out.Set(x-b.Min.X, y-b.Min.Y, px)
			}
		}
	}
	return out
}

// SuppressHue blackens every non-black pixel of img whose hue lies in
// [lo, hi] (0-180 scale), in place.
func SuppressHue(img *image.RGBA, lo, hi float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBAAt(x, y)
			if px.R == 0 && px.G == 0 && px.B == 0 {
				continue
			}
			if colorutil.HueIn(colorutil.ToHSV(px).H, lo, hi) {
				img.SetRGBA(x, y, colorutil.Black)
			}
		}
	}
}
