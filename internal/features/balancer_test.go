package features_test

import (
	"testing"

	"TrendML/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelsWithCounts(zeros, ones int) []int {
	y := make([]int, 0, zeros+ones)
	for i := 0; i < zeros; i++ {
		y = append(y, 0)
	}
	for i := 0; i < ones; i++ {
		y = append(y, 1)
	}
	return y
}

func TestDetectImbalance_Balanced(t *testing.T) {
	b := features.NewBalancer(0.3, nil)
	info := b.DetectImbalance(labelsWithCounts(50, 50))

	assert.False(t, info.Imbalanced)
	assert.InDelta(t, 1.0, info.Ratio, 1e-12)
	assert.InDelta(t, 0.5, info.Distribution[0], 1e-12)
	assert.InDelta(t, 0.5, info.Distribution[1], 1e-12)
	assert.InDelta(t, 1.3, info.Threshold, 1e-12)
}

func TestDetectImbalance_Skewed(t *testing.T) {
	b := features.NewBalancer(0.3, nil)

	// 60:40 is a 1.5 ratio, above the 1.3 threshold.
	info := b.DetectImbalance(labelsWithCounts(60, 40))
	assert.True(t, info.Imbalanced)
	assert.InDelta(t, 1.5, info.Ratio, 1e-12)

	// 55:45 is ~1.22, under the threshold.
	info = b.DetectImbalance(labelsWithCounts(55, 45))
	assert.False(t, info.Imbalanced)
}

func TestDetectImbalance_SingleClass(t *testing.T) {
	b := features.NewBalancer(0.3, nil)
	info := b.DetectImbalance(labelsWithCounts(10, 0))
	assert.False(t, info.Imbalanced, "single-class sets report ratio 1.0")
	assert.InDelta(t, 1.0, info.Ratio, 1e-12)
}

func TestClassWeights_Law(t *testing.T) {
	b := features.NewBalancer(0.3, nil)
	c0, c1 := 75, 25
	y := labelsWithCounts(c0, c1)
	w := b.ClassWeights(y)

	n := float64(c0 + c1)
	assert.InDelta(t, n/(2*float64(c0)), w[0], 1e-12)
	assert.InDelta(t, n/(2*float64(c1)), w[1], 1e-12)

	// Balanced effective weight: c0*w0 == c1*w1.
	assert.InDelta(t, float64(c0)*w[0], float64(c1)*w[1], 1e-9)
}

func TestBalance_NotFlaggedReturnsInput(t *testing.T) {
	b := features.NewBalancer(0.3, features.NewSMOTE(5, 42))
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []int{0, 0, 1, 1}

	outX, outY, err := b.Balance(X, y)
	require.NoError(t, err)
	assert.Equal(t, X, outX)
	assert.Equal(t, y, outY)
}

func TestBalance_PassthroughDegrade(t *testing.T) {
	b := features.NewBalancer(0.3, features.Passthrough{})
	X := make([][]float64, 100)
	for i := range X {
		X[i] = []float64{float64(i)}
	}
	y := labelsWithCounts(80, 20)

	outX, outY, err := b.Balance(X, y)
	require.NoError(t, err)
	assert.Len(t, outX, 100, "passthrough must return input unchanged")
	assert.Equal(t, y, outY)
}

func TestSMOTE_EqualizesClasses(t *testing.T) {
	n0, n1 := 80, 20
	X := make([][]float64, 0, n0+n1)
	for i := 0; i < n0; i++ {
		X = append(X, []float64{float64(i), 0.5})
	}
	for i := 0; i < n1; i++ {
		X = append(X, []float64{100 + float64(i), 9.5})
	}
	y := labelsWithCounts(n0, n1)

	b := features.NewBalancer(0.3, features.NewSMOTE(5, 42))
	outX, outY, err := b.Balance(X, y)
	require.NoError(t, err)

	counts := map[int]int{}
	for _, v := range outY {
		counts[v]++
	}
	assert.Equal(t, n0, counts[0])
	assert.Equal(t, n0, counts[1], "minority oversampled to match majority")
	assert.Len(t, outX, 2*n0)

	// Synthetic rows interpolate minority samples, so they stay inside the
	// minority feature envelope.
	for i := n0 + n1; i < len(outX); i++ {
		assert.GreaterOrEqual(t, outX[i][0], 100.0, "synthetic row %d", i)
		assert.LessOrEqual(t, outX[i][0], 119.0, "synthetic row %d", i)
		assert.InDelta(t, 9.5, outX[i][1], 1e-9, "synthetic row %d", i)
	}
}

func TestSMOTE_Deterministic(t *testing.T) {
	X := make([][]float64, 0, 30)
	for i := 0; i < 24; i++ {
		X = append(X, []float64{float64(i)})
	}
	for i := 0; i < 6; i++ {
		X = append(X, []float64{50 + float64(i)})
	}
	y := labelsWithCounts(24, 6)

	run := func() ([][]float64, []int) {
		outX, outY, err := features.NewSMOTE(3, 7).Resample(X, y)
		require.NoError(t, err)
		return outX, outY
	}
	x1, y1 := run()
	x2, y2 := run()
	assert.Equal(t, x1, x2, "same seed must reproduce synthetic rows")
	assert.Equal(t, y1, y2)
}

func TestSMOTE_TinyMinority(t *testing.T) {
	// A single minority row has nothing to interpolate with; input passes
	// through rather than failing.
	X := [][]float64{{1}, {2}, {3}, {4}, {9}}
	y := []int{0, 0, 0, 0, 1}

	outX, outY, err := features.NewSMOTE(5, 1).Resample(X, y)
	require.NoError(t, err)
	assert.Equal(t, X, outX)
	assert.Equal(t, y, outY)
}
