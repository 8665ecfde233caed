// Package pixelclass trains per-pixel foreground/background classifiers on
// HSV colour features and applies them to whole images.
package pixelclass

import (
	"errors"
	"fmt"
)

// Labels used for training samples.
const (
	Background = 0
	Foreground = 1
)

// ErrNeedTwoClasses is returned when training data does not contain both
// foreground and background samples.
var ErrNeedTwoClasses = errors.New("training needs foreground and background samples")

// Feature is a pixel descriptor: H (0-180), S (0-255), V (0-255).
type Feature [3]float64

// Sample is a labelled feature.
type Sample struct {
	Feature Feature
	Label   int
}

// Classifier is a binary pixel classifier.
type Classifier interface {
	Name() string
	Train(samples []Sample) error
	Predict(f Feature) int
}

// Kind selects a classifier implementation.
type Kind int

const (
	KindKNN Kind = iota
	KindNormalBayes
	KindLinearSVM
)

func (k Kind) String() string {
	switch k {
	case KindKNN:
		return "KNN"
	case KindNormalBayes:
		return "Bayes"
	case KindLinearSVM:
		return "SVM"
	default:
		return "Unknown"
	}
}

// New returns an untrained classifier of kind k with default settings.
func New(k Kind) (Classifier, error) {
	switch k {
	case KindKNN:
		return NewKNN(DefaultK), nil
	case KindNormalBayes:
		return NewNormalBayes(), nil
	case KindLinearSVM:
		return NewLinearSVM(DefaultSVMIterations, DefaultSVMLambda), nil
	default:
		return nil, fmt.Errorf("unknown classifier kind %d", k)
	}
}

// Counts returns the number of background and foreground samples.
func Counts(samples []Sample) (bg, fg int) {
	for _, s := range samples {
		if s.Label == Foreground {
			fg++
		} else {
			bg++
		}
	}
	return bg, fg
}

func checkSamples(samples []Sample) error {
	bg, fg := Counts(samples)
	if bg == 0 || fg == 0 {
		return fmt.Errorf("%w (got %d foreground, %d background)", ErrNeedTwoClasses, fg, bg)
	}
	return nil
}
