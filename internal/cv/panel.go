package cv

import (
	"image"
	"image/color"

	"visionlab/internal/prefs"
	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Keys that end an interactive loop.
const (
	KeyEsc = 27
	KeyQ   = 'q'
)

// binding ties one trackbar to a field of the caller's parameter struct.
type binding struct {
	name  string
	tb    *gocv.Trackbar
	field *int
	max   int
}

// stored returns the value pr holds for b, clamped to the trackbar range.
func (b binding) stored(pr *prefs.Prefs) int {
	return clamp(pr.Int(b.name, *b.field), 0, b.max)
}

// Panel is a window with trackbars bound to integer fields. Each loop owns
// its parameter struct and calls Sync to pull the trackbar positions into it.
type Panel struct {
	win      *gocv.Window
	bindings []binding
}

// NewPanel opens a window called name.
func NewPanel(name string) *Panel {
	return &Panel{win: gocv.NewWindow(name)}
}

// Window returns the underlying window.
func (p *Panel) Window() *gocv.Window { return p.win }

// Int adds a trackbar with range [0, max] bound to field. The field is
// clamped to that range and the trackbar starts at its value.
func (p *Panel) Int(name string, field *int, max int) {
	tb := p.win.CreateTrackbar(name, max)
	*field = clamp(*field, 0, max)
	tb.SetPos(*field)
	p.bindings = append(p.bindings, binding{name: name, tb: tb, field: field, max: max})
}

// Sync copies every trackbar position into its bound field and reports
// whether any field changed.
func (p *Panel) Sync() bool {
	changed := false
	for _, b := range p.bindings {
		if pos := b.tb.GetPos(); pos != *b.field {
			*b.field = pos
			changed = true
		}
	}
	return changed
}

// Restore seeds every bound field and its trackbar from pr.
func (p *Panel) Restore(pr *prefs.Prefs) {
	for _, b := range p.bindings {
		*b.field = b.stored(pr)
		b.tb.SetPos(*b.field)
	}
}

// Store writes every bound field into pr.
func (p *Panel) Store(pr *prefs.Prefs) {
	for _, b := range p.bindings {
		pr.SetInt(b.name, *b.field)
	}
}

// Show displays mat in the panel's window.
func (p *Panel) Show(mat gocv.Mat) { p.win.IMShow(mat) }

// Close closes the window.
func (p *Panel) Close() error { return p.win.Close() }

// Quit waits up to delay ms for a key and reports whether it was q or Esc.
func Quit(w *gocv.Window, delay int) bool {
	k := w.WaitKey(delay)
	return k == KeyEsc || k == KeyQ
}

// DrawBoxes outlines boxes on mat.
func DrawBoxes(mat *gocv.Mat, boxes []geometry.RectInt, c color.RGBA, thickness int) {
	for _, b := range boxes {
		gocv.Rectangle(mat, b.ToImage(), c, thickness)
	}
}

// DrawPolygon draws a closed polygon through pts.
func DrawPolygon(mat *gocv.Mat, pts []image.Point, c color.RGBA, thickness int) {
	for i := range pts {
		gocv.Line(mat, pts[i], pts[(i+1)%len(pts)], c, thickness)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
