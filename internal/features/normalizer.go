package features

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrNotFitted is returned when Transform or InverseTransform is called on
// a normalizer that has not been fitted.
var ErrNotFitted = errors.New("normalizer not fitted, call Fit first")

// Normalizer standardizes feature columns to zero mean and unit variance.
// The fitted state (per-column mean and population standard deviation) is a
// plain value owned by the caller and immutable after Fit.
type Normalizer struct {
	columns []string
	means   []float64
	stds    []float64
	fitted  bool
}

// NewNormalizer creates an unfitted normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Fit learns per-column mean and standard deviation from X, whose columns
// must match the given names positionally.
func (n *Normalizer) Fit(X [][]float64, columns []string) error {
	if len(X) == 0 {
		return errors.New("normalizer: empty matrix")
	}
	if len(columns) == 0 {
		return errors.New("normalizer: no columns")
	}
	if len(X[0]) != len(columns) {
		return fmt.Errorf("normalizer: %d columns named for %d-wide matrix", len(columns), len(X[0]))
	}

	means := make([]float64, len(columns))
	stds := make([]float64, len(columns))
	col := make([]float64, len(X))
	for j := range columns {
		for i, row := range X {
			col[i] = row[j]
		}
		means[j] = stat.Mean(col, nil)
		stds[j] = stat.PopStdDev(col, nil)
	}

	n.columns = append([]string(nil), columns...)
	n.means = means
	n.stds = stds
	n.fitted = true
	return nil
}

// Transform returns a new matrix with each column standardized as
// (x-mean)/std. A zero-variance column keeps scale 1.0 so degenerate input
// shifts but never divides by zero.
func (n *Normalizer) Transform(X [][]float64) ([][]float64, error) {
	if !n.fitted {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(n.columns) {
			return nil, fmt.Errorf("normalizer: row %d has %d values, fitted on %d", i, len(row), len(n.columns))
		}
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - n.means[j]) / n.scale(j)
		}
		out[i] = r
	}
	return out, nil
}

// FitTransform fits on X and transforms it.
func (n *Normalizer) FitTransform(X [][]float64, columns []string) ([][]float64, error) {
	if err := n.Fit(X, columns); err != nil {
		return nil, err
	}
	return n.Transform(X)
}

// InverseTransform reconstructs original-scale values from standardized
// ones.
func (n *Normalizer) InverseTransform(X [][]float64) ([][]float64, error) {
	if !n.fitted {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(n.columns) {
			return nil, fmt.Errorf("normalizer: row %d has %d values, fitted on %d", i, len(row), len(n.columns))
		}
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = v*n.scale(j) + n.means[j]
		}
		out[i] = r
	}
	return out, nil
}

// Fitted reports whether Fit has run.
func (n *Normalizer) Fitted() bool { return n.fitted }

// Columns returns the fitted column names, or nil before Fit.
func (n *Normalizer) Columns() []string {
	if !n.fitted {
		return nil
	}
	return append([]string(nil), n.columns...)
}

func (n *Normalizer) scale(j int) float64 {
	if n.stds[j] == 0 {
		return 1.0
	}
	return n.stds[j]
}
