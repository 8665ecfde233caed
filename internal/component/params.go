// Package component finds component designators and component outlines on
// a PCB image and loads the per-class templates and sprites.
package component

// DesignatorParams controls template-match based designator detection.
type DesignatorParams struct {
	// Threshold on the min-max normalised match score, in percent (0-100).
	Threshold int
}

// DefaultDesignatorParams returns the trackbar start value.
func DefaultDesignatorParams() DesignatorParams {
	return DesignatorParams{Threshold: 70}
}

// WithThreshold returns a copy with the threshold clamped to 0-100.
func (p DesignatorParams) WithThreshold(t int) DesignatorParams {
	p.Threshold = max(0, min(100, t))
	return p
}

// OutlineParams controls colour-based outline detection. Hue uses the
// OpenCV 0-180 scale, saturation and value 0-255.
type OutlineParams struct {
	HueMin, HueMax int
	SatMin         int
	ValMin, ValMax int

	Kernel     int // Closing kernel size in pixels
	Iterations int // Closing iterations
	MinArea    int // Smallest kept region in pixels
}

// DefaultOutlineParams targets the white silkscreen outlines of a green
// board.
func DefaultOutlineParams() OutlineParams {
	return OutlineParams{
		HueMin:     0,
		HueMax:     180,
		SatMin:     0,
		ValMin:     200,
		ValMax:     255,
		Kernel:     5,
		Iterations: 2,
		MinArea:    100,
	}
}

// WithMinArea returns a copy with the minimum region area set.
func (p OutlineParams) WithMinArea(a int) OutlineParams {
	p.MinArea = a
	return p
}
