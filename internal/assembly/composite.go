package assembly

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"visionlab/pkg/geometry"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// DefaultTallRatio is the height/width ratio above which an outline is
// considered to be standing upright.
const DefaultTallRatio = 1.2

var (
	ErrEmptySprite = errors.New("sprite has no pixels")
	ErrEmptyTarget = errors.New("target box has no area")
	ErrOutOfBounds = errors.New("target box outside scene")
)

// BoundsError reports a target box that does not fit inside the scene.
type BoundsError struct {
	Target geometry.RectInt
	Scene  image.Rectangle
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("target %dx%d+%d+%d outside scene %v",
		e.Target.Width, e.Target.Height, e.Target.X, e.Target.Y, e.Scene)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Target selects which side of a pairing the sprite is drawn on.
type Target int

const (
	TargetOutline Target = iota
	TargetDesignator
)

func (t Target) String() string {
	switch t {
	case TargetOutline:
		return "outline"
	case TargetDesignator:
		return "designator"
	default:
		return "unknown"
	}
}

// Options controls how a sprite is composited.
type Options struct {
	Target       Target
	RotateIfTall bool        // Turn the sprite 90° clockwise for upright outlines
	TallRatio    float64     // Height/width ratio for RotateIfTall; 0 uses DefaultTallRatio
	Link         color.Color // When set, draw a line between the two box centers
}

// DefaultOptions returns options that draw on the outline without rotation.
func DefaultOptions() Options {
	return Options{Target: TargetOutline, TallRatio: DefaultTallRatio}
}

// WithRotateIfTall returns a copy of o with rotation enabled or disabled.
func (o Options) WithRotateIfTall(rotate bool) Options {
	o.RotateIfTall = rotate
	return o
}

// WithLink returns a copy of o that draws a link line in c.
func (o Options) WithLink(c color.Color) Options {
	o.Link = c
	return o
}

func (o Options) tallRatio() float64 {
	if o.TallRatio <= 0 {
		return DefaultTallRatio
	}
	return o.TallRatio
}

// IsTall reports whether r is taller than wide by more than ratio.
func IsTall(r geometry.RectInt, ratio float64) bool {
	return float64(r.Height) > float64(r.Width)*ratio
}

func (o Options) target(p Pairing) geometry.RectInt {
	if o.Target == TargetDesignator {
		return p.Designator
	}
	return p.Outline
}

// PrepareSprite returns the sprite exactly as Composite writes it for p:
// rotated when the outline is tall and rotation is enabled, then resized
// bilinearly to the target box.
func PrepareSprite(p Pairing, sprite image.Image, opts Options) (*image.RGBA, error) {
	if sprite == nil || sprite.Bounds().Empty() {
		return nil, ErrEmptySprite
	}
	target := opts.target(p)
	if target.Empty() {
		return nil, ErrEmptyTarget
	}

	src := sprite
	if opts.RotateIfTall && IsTall(p.Outline, opts.tallRatio()) {
		src = imaging.Rotate270(sprite)
	}

	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Composite draws sprite into scene over the pairing's target box,
// replacing the pixels there. Nothing is written if an error is returned.
func Composite(scene draw.Image, p Pairing, sprite image.Image, opts Options) error {
	target := opts.target(p)
	if !target.Empty() && !target.In(scene.Bounds()) {
		return &BoundsError{Target: target, Scene: scene.Bounds()}
	}

	resized, err := PrepareSprite(p, sprite, opts)
	if err != nil {
		return err
	}
	draw.Draw(scene, target.ToImage(), resized, image.Point{}, draw.Src)

	if opts.Link != nil {
		drawLink(scene, p.Outline.Center(), p.Designator.Center(), opts.Link)
	}
	return nil
}

// Assemble pairs outlines with designators and composites sprite for every
// pairing. It stops at the first compositing error.
func Assemble(scene draw.Image, outlines, designators []geometry.RectInt, sprite image.Image, opts Options) ([]Pairing, error) {
	pairs, err := PairNearest(outlines, designators)
	if err != nil {
		return nil, err
	}
	for i, p := range pairs {
		if err := Composite(scene, p, sprite, opts); err != nil {
			return pairs[:i], fmt.Errorf("composite outline %d: %w", i, err)
		}
	}
	return pairs, nil
}

func drawLink(scene draw.Image, a, b geometry.PointInt, c color.Color) {
	bounds := scene.Bounds()
	for _, pt := range geometry.LinePoints(a, b) {
		if pt.ToImage().In(bounds) {
			scene.Set(pt.X, pt.Y, c)
		}
	}
}

// DrawFrame draws a 1px frame on the outermost pixels of r, clipped to
// scene.
func DrawFrame(scene draw.Image, r geometry.RectInt, c color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1
	corners := []geometry.PointInt{{X: r.X, Y: r.Y}, {X: x1, Y: r.Y}, {X: x1, Y: y1}, {X: r.X, Y: y1}}
	for i := range corners {
		drawLink(scene, corners[i], corners[(i+1)%len(corners)], c)
	}
}
