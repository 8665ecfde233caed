package pixelclass

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// covarianceRidge is added to every covariance diagonal so that classes
// with a constant channel (e.g. saturated V) stay invertible.
const covarianceRidge = 1e-3

type gaussian struct {
	label  int
	mean   []float64
	chol   mat.Cholesky
	logDet float64
}

// NormalBayes models each class as a multivariate normal distribution with
// full covariance and picks the most likely class. Classes have equal priors.
type NormalBayes struct {
	classes []gaussian
}

// NewNormalBayes returns an untrained normal Bayes classifier.
func NewNormalBayes() *NormalBayes { return &NormalBayes{} }

func (c *NormalBayes) Name() string { return "Bayes" }

// Train estimates a mean and covariance per label.
func (c *NormalBayes) Train(samples []Sample) error {
	if err := checkSamples(samples); err != nil {
		return err
	}

	byLabel := make(map[int][]Feature)
	for _, s := range samples {
		byLabel[s.Label] = append(byLabel[s.Label], s.Feature)
	}
	labels := make([]int, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	c.classes = c.classes[:0]
	for _, l := range labels {
		feats := byLabel[l]
		x := mat.NewDense(len(feats), len(Feature{}), nil)
		for i, f := range feats {
			x.SetRow(i, f[:])
		}

		g := gaussian{label: l, mean: make([]float64, len(Feature{}))}
		for j := range g.mean {
			g.mean[j] = stat.Mean(mat.Col(nil, j, x), nil)
		}

		cov := mat.NewSymDense(len(Feature{}), nil)
		if len(feats) > 1 {
			stat.CovarianceMatrix(cov, x, nil)
		}
		for j := 0; j < len(Feature{}); j++ {
			cov.SetSym(j, j, cov.At(j, j)+covarianceRidge)
		}
		if ok := g.chol.Factorize(cov); !ok {
			return fmt.Errorf("covariance of label %d is not positive definite", l)
		}
		g.logDet = g.chol.LogDet()
		c.classes = append(c.classes, g)
	}
	return nil
}

// Predict returns the label with the highest log-likelihood.
func (c *NormalBayes) Predict(f Feature) int {
	best, bestScore := Background, math.Inf(-1)
	d := mat.NewVecDense(len(Feature{}), nil)
	var x mat.VecDense
	for i := range c.classes {
		g := &c.classes[i]
		for j := range g.mean {
			d.SetVec(j, f[j]-g.mean[j])
		}
		if err := g.chol.SolveVecTo(&x, d); err != nil {
			continue
		}
		score := -0.5 * (g.logDet + mat.Dot(d, &x))
		if score > bestScore {
			best, bestScore = g.label, score
		}
	}
	return best
}
