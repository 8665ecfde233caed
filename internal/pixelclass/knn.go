package pixelclass

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultK is the neighbour count used by the demo.
const DefaultK = 3

// KNN is a brute-force k-nearest-neighbour classifier.
type KNN struct {
	K       int
	samples []Sample
}

// NewKNN returns a KNN classifier using k neighbours.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = 1
	}
	return &KNN{K: k}
}

func (c *KNN) Name() string { return "KNN" }

// Train stores a copy of the samples.
func (c *KNN) Train(samples []Sample) error {
	if err := checkSamples(samples); err != nil {
		return err
	}
	c.samples = append([]Sample(nil), samples...)
	return nil
}

type neighbour struct {
	dist  float64
	label int
}

// Predict returns the majority label among the K nearest samples. A tied
// vote goes to the label of the nearest neighbour among the tied labels.
func (c *KNN) Predict(f Feature) int {
	if len(c.samples) == 0 {
		return Background
	}
	ns := make([]neighbour, len(c.samples))
	for i, s := range c.samples {
		ns[i] = neighbour{dist: floats.Distance(f[:], s.Feature[:], 2), label: s.Label}
	}
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].dist < ns[j].dist })

	k := min(c.K, len(ns))
	votes := make(map[int]int)
	top := 0
	for _, n := range ns[:k] {
		votes[n.label]++
		top = max(top, votes[n.label])
	}
	for _, n := range ns[:k] {
		if votes[n.label] == top {
			return n.label
		}
	}
	return ns[0].label
}
