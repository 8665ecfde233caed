package pixelclass

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Defaults for LinearSVM.
const (
	DefaultSVMIterations = 100
	DefaultSVMLambda     = 0.01
)

// LinearSVM is a two-class linear support vector machine trained with the
// Pegasos sub-gradient method on standardised features. The bias is
// learned as an extra weight on a constant input. Training visits the
// samples in order, so results are deterministic.
type LinearSVM struct {
	MaxIter int     // Passes over the training set
	Lambda  float64 // Regularisation strength

	mean, scale []float64
	w           []float64 // last entry is the bias
}

// NewLinearSVM returns an untrained SVM.
func NewLinearSVM(maxIter int, lambda float64) *LinearSVM {
	if maxIter < 1 {
		maxIter = DefaultSVMIterations
	}
	if lambda <= 0 {
		lambda = DefaultSVMLambda
	}
	return &LinearSVM{MaxIter: maxIter, Lambda: lambda}
}

func (c *LinearSVM) Name() string { return "SVM" }

// Train fits the separating hyperplane.
func (c *LinearSVM) Train(samples []Sample) error {
	if err := checkSamples(samples); err != nil {
		return err
	}

	dims := len(Feature{})
	c.mean = make([]float64, dims)
	c.scale = make([]float64, dims)
	col := make([]float64, len(samples))
	for j := 0; j < dims; j++ {
		for i, s := range samples {
			col[i] = s.Feature[j]
		}
		m, sd := stat.MeanStdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			sd = 1
		}
		c.mean[j], c.scale[j] = m, sd
	}

	xs := make([][]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = c.standardise(s.Feature)
		ys[i] = -1
		if s.Label == Foreground {
			ys[i] = 1
		}
	}

	c.w = make([]float64, dims+1)
	t := 0
	for epoch := 0; epoch < c.MaxIter; epoch++ {
		for i, x := range xs {
			t++
			eta := 1 / (c.Lambda * float64(t))
			margin := ys[i] * floats.Dot(c.w, x)
			floats.Scale(1-eta*c.Lambda, c.w)
			if margin < 1 {
				floats.AddScaled(c.w, eta*ys[i], x)
			}
		}
	}
	return nil
}

// Predict returns Foreground on the positive side of the hyperplane.
func (c *LinearSVM) Predict(f Feature) int {
	if c.w == nil {
		return Background
	}
	if c.Decision(f) > 0 {
		return Foreground
	}
	return Background
}

// Decision returns the signed distance-like score of f.
func (c *LinearSVM) Decision(f Feature) float64 {
	return floats.Dot(c.w, c.standardise(f))
}

// standardise returns the scaled feature with a constant 1 appended for
// the bias term.
func (c *LinearSVM) standardise(f Feature) []float64 {
	x := make([]float64, len(f)+1)
	for j := range f {
		x[j] = (f[j] - c.mean[j]) / c.scale[j]
	}
	x[len(f)] = 1
	return x
}
