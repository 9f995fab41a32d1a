package features_test

import (
	"testing"
	"time"

	"TrendML/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitter_RatioValidation(t *testing.T) {
	cases := []struct {
		name             string
		train, val, test float64
		wantErr          bool
	}{
		{"default", 0.7, 0.15, 0.15, false},
		{"uneven but valid", 0.6, 0.2, 0.2, false},
		{"sum too high", 0.7, 0.2, 0.2, true},
		{"sum too low", 0.5, 0.2, 0.2, true},
		{"zero ratio", 0.8, 0.0, 0.2, true},
		{"negative ratio", 0.9, -0.1, 0.2, true},
		{"ratio of one", 1.0, 0.15, 0.15, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := features.NewSplitter(tc.train, tc.val, tc.test)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitter_PartitionLaw(t *testing.T) {
	s, err := features.NewSplitter(0.7, 0.15, 0.15)
	require.NoError(t, err)

	for _, n := range []int{10, 57, 100, 1001} {
		X := make([][]float64, n)
		y := make([]int, n)
		for i := range X {
			X[i] = []float64{float64(i)}
			y[i] = i % 2
		}
		sp, err := s.Split(X, y)
		require.NoError(t, err, "n=%d", n)

		total := len(sp.XTrain) + len(sp.XVal) + len(sp.XTest)
		assert.Equal(t, n, total, "partitions must cover all rows for n=%d", n)
		assert.Equal(t, len(sp.XTrain), len(sp.YTrain))
		assert.Equal(t, len(sp.XVal), len(sp.YVal))
		assert.Equal(t, len(sp.XTest), len(sp.YTest))
		assert.NotEmpty(t, sp.XTrain, "n=%d", n)
		assert.NotEmpty(t, sp.XVal, "n=%d", n)
		assert.NotEmpty(t, sp.XTest, "n=%d", n)

		// Temporal order: partitions are contiguous index ranges.
		lastTrain := sp.XTrain[len(sp.XTrain)-1][0]
		firstVal := sp.XVal[0][0]
		lastVal := sp.XVal[len(sp.XVal)-1][0]
		firstTest := sp.XTest[0][0]
		assert.Less(t, lastTrain, firstVal)
		assert.Less(t, lastVal, firstTest)
	}
}

func TestSplitter_ExactCutIndices(t *testing.T) {
	s, err := features.NewSplitter(0.7, 0.15, 0.15)
	require.NoError(t, err)

	n := 100
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range X {
		X[i] = []float64{float64(i)}
	}
	sp, err := s.Split(X, y)
	require.NoError(t, err)

	assert.Len(t, sp.XTrain, 70)
	assert.Len(t, sp.XVal, 15)
	assert.Len(t, sp.XTest, 15)
	assert.Equal(t, 70, s.TrainEnd(n))
}

func TestSplitter_LengthMismatch(t *testing.T) {
	s, err := features.NewSplitter(0.7, 0.15, 0.15)
	require.NoError(t, err)

	_, err = s.Split(make([][]float64, 10), make([]int, 9))
	assert.Error(t, err)
}

func TestSplitter_VerifyTemporalIntegrity(t *testing.T) {
	s, err := features.NewSplitter(0.7, 0.15, 0.15)
	require.NoError(t, err)

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(from, to int) []time.Time {
		out := make([]time.Time, 0, to-from)
		for i := from; i < to; i++ {
			out = append(out, t0.Add(time.Duration(i)*time.Hour))
		}
		return out
	}

	assert.True(t, s.VerifyTemporalIntegrity(mk(0, 70), mk(70, 85), mk(85, 100)))
	assert.False(t, s.VerifyTemporalIntegrity(mk(0, 70), mk(60, 85), mk(85, 100)), "overlapping val must fail")
	assert.False(t, s.VerifyTemporalIntegrity(mk(70, 85), mk(0, 70), mk(85, 100)), "reordered partitions must fail")
	assert.True(t, s.VerifyTemporalIntegrity(nil, mk(0, 10), mk(10, 20)), "missing timestamps skip the check")
}
