package features_test

import (
	"math"
	"testing"

	"TrendML/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_TransformBeforeFit(t *testing.T) {
	n := features.NewNormalizer()

	_, err := n.Transform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, features.ErrNotFitted)

	_, err = n.InverseTransform([][]float64{{1, 2}})
	assert.ErrorIs(t, err, features.ErrNotFitted)
}

func TestNormalizer_ZeroMeanUnitVariance(t *testing.T) {
	X := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}}
	n := features.NewNormalizer()
	out, err := n.FitTransform(X, []string{"a", "b"})
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		sum, sumSq := 0.0, 0.0
		for _, row := range out {
			sum += row[j]
			sumSq += row[j] * row[j]
		}
		mean := sum / float64(len(out))
		variance := sumSq/float64(len(out)) - mean*mean
		assert.InDelta(t, 0.0, mean, 1e-12, "column %d mean", j)
		assert.InDelta(t, 1.0, variance, 1e-12, "column %d variance", j)
	}
}

func TestNormalizer_RoundTrip(t *testing.T) {
	X := [][]float64{
		{14.2, -3.5, 900},
		{15.1, -2.2, 875},
		{13.8, -4.1, 950},
		{16.0, -1.0, 820},
	}
	n := features.NewNormalizer()
	transformed, err := n.FitTransform(X, []string{"ATR", "MACD", "CCI"})
	require.NoError(t, err)

	back, err := n.InverseTransform(transformed)
	require.NoError(t, err)
	for i := range X {
		for j := range X[i] {
			rel := math.Abs(back[i][j]-X[i][j]) / math.Abs(X[i][j])
			assert.Less(t, rel, 1e-9, "round trip at [%d][%d]", i, j)
		}
	}
}

func TestNormalizer_ZeroVarianceColumn(t *testing.T) {
	X := [][]float64{{7, 1}, {7, 2}, {7, 3}}
	n := features.NewNormalizer()
	out, err := n.FitTransform(X, []string{"flat", "lin"})
	require.NoError(t, err)

	// Flat column: mean subtracted, scale held at 1.0, so all zeros.
	for i := range out {
		assert.Equal(t, 0.0, out[i][0], "flat column row %d", i)
		assert.False(t, math.IsNaN(out[i][1]))
	}

	back, err := n.InverseTransform(out)
	require.NoError(t, err)
	for i := range back {
		assert.InDelta(t, 7.0, back[i][0], 1e-12)
	}
}

func TestNormalizer_InputUnchanged(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}
	n := features.NewNormalizer()
	_, err := n.FitTransform(X, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, X, "transform must not mutate its input")
}

func TestNormalizer_ShapeMismatch(t *testing.T) {
	n := features.NewNormalizer()
	require.NoError(t, n.Fit([][]float64{{1, 2}}, []string{"a", "b"}))

	_, err := n.Transform([][]float64{{1, 2, 3}})
	assert.Error(t, err)

	err = n.Fit([][]float64{{1, 2}}, []string{"a"})
	assert.Error(t, err)
}
