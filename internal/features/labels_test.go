package features_test

import (
	"testing"
	"time"

	"TrendML/internal/domain/models"
	"TrendML/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameWithCloses(closes []float64) *models.Frame {
	candles := make([]models.Candle, len(closes))
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = models.Candle{
			Bucket: t0.Add(time.Duration(i) * 24 * time.Hour),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		}
	}
	return models.FrameFromCandles(candles)
}

func TestLabels_Alignment(t *testing.T) {
	for _, n := range []int{2, 10, 60} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		y, err := features.NewLabelCreator(0.005).Labels(frameWithCloses(closes))
		require.NoError(t, err)
		assert.Len(t, y, n-1, "labels must align to all but the last row")
	}
}

func TestLabels_StrictlyIncreasingSixtyRows(t *testing.T) {
	// Close = 100, 101, ..., 159. The fractional gain 1/Close stays above
	// the 0.5% threshold through Close=158, so every label is 1.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	y, err := features.NewLabelCreator(0.005).Labels(frameWithCloses(closes))
	require.NoError(t, err)
	require.Len(t, y, 59)
	for i, v := range y {
		assert.Equal(t, 1, v, "label[%d] for close %v", i, closes[i])
	}
}

func TestLabels_ThresholdCutoff(t *testing.T) {
	// A 1-point step on a base of 300 is a 0.33% move, under the 0.5%
	// threshold, so labels flip to 0 at the literal formula boundary.
	closes := []float64{300, 301, 302}
	y, err := features.NewLabelCreator(0.005).Labels(frameWithCloses(closes))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, y)
}

func TestLabels_StrictlyDecreasing(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	y, err := features.NewLabelCreator(0.005).Labels(frameWithCloses(closes))
	require.NoError(t, err)
	for i, v := range y {
		assert.Equal(t, 0, v, "label[%d]", i)
	}
}

func TestLabels_TooShort(t *testing.T) {
	y, err := features.NewLabelCreator(0.005).Labels(frameWithCloses([]float64{100}))
	require.NoError(t, err)
	assert.Empty(t, y)
}

func TestLabels_Named(t *testing.T) {
	lc := features.NewLabelCreator(0.005)
	assert.Equal(t, []string{"up", "down", "up"}, lc.Named([]int{1, 0, 1}))
}
