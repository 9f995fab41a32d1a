package features

import (
	"fmt"
	"time"
)

// ratioTolerance is how far the three ratios may drift from summing to 1.0.
const ratioTolerance = 0.001

// Splitter partitions rows into train/validation/test spans preserving
// temporal order. There is no shuffling, ever.
type Splitter struct {
	trainRatio float64
	valRatio   float64
	testRatio  float64
}

// NewSplitter validates the ratios (each in (0,1), summing to 1.0 within
// tolerance) and returns a splitter.
func NewSplitter(trainRatio, valRatio, testRatio float64) (*Splitter, error) {
	for _, r := range []float64{trainRatio, valRatio, testRatio} {
		if r <= 0 || r >= 1 {
			return nil, fmt.Errorf("split ratio %v outside (0, 1)", r)
		}
	}
	sum := trainRatio + valRatio + testRatio
	if sum-1.0 > ratioTolerance || 1.0-sum > ratioTolerance {
		return nil, fmt.Errorf("split ratios sum to %v, want 1.0", sum)
	}
	return &Splitter{trainRatio: trainRatio, valRatio: valRatio, testRatio: testRatio}, nil
}

// Split holds the three contiguous partitions.
type Split struct {
	XTrain [][]float64
	XVal   [][]float64
	XTest  [][]float64
	YTrain []int
	YVal   []int
	YTest  []int
}

// Split slices X and y at floor(n*train) and floor(n*train)+floor(n*val).
// The test partition absorbs the flooring remainder, so counts always sum
// to n.
func (s *Splitter) Split(X [][]float64, y []int) (*Split, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("split: %d feature rows vs %d labels", len(X), len(y))
	}
	n := len(X)
	trainEnd := int(float64(n) * s.trainRatio)
	valEnd := trainEnd + int(float64(n)*s.valRatio)

	return &Split{
		XTrain: X[:trainEnd],
		XVal:   X[trainEnd:valEnd],
		XTest:  X[valEnd:],
		YTrain: y[:trainEnd],
		YVal:   y[trainEnd:valEnd],
		YTest:  y[valEnd:],
	}, nil
}

// TrainEnd returns the first cut index for n rows, used when fitting
// transforms on the training span only.
func (s *Splitter) TrainEnd(n int) int {
	return int(float64(n) * s.trainRatio)
}

// VerifyTemporalIntegrity asserts that every partition ends strictly before
// the next begins. Vacuously true when any partition has no timestamps
// (resampled data loses its index).
func (s *Splitter) VerifyTemporalIntegrity(train, val, test []time.Time) bool {
	if len(train) == 0 || len(val) == 0 || len(test) == 0 {
		return true
	}
	trainMax := train[len(train)-1]
	valMin := val[0]
	valMax := val[len(val)-1]
	testMin := test[0]
	return trainMax.Before(valMin) && valMax.Before(testMin)
}
