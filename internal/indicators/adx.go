package indicators

import (
	"math"

	"TrendML/internal/domain/models"
)

// ADX computes the Average Directional Index. Directional movements are
// gated High/Low diffs; +DI/-DI normalize their rolling sums by the rolling
// true-range sum, DX measures their divergence and ADX smooths DX.
type ADX struct {
	period int
}

// NewADX creates an ADX calculator with the given period (typically 14).
func NewADX(period int) *ADX {
	return &ADX{period: period}
}

func (a *ADX) Name() string { return "ADX" }

func (a *ADX) Columns() []string { return []string{"ADX"} }

func (a *ADX) Calculate(f *models.Frame) (*models.Frame, error) {
	high, low, closeC, err := ohlc(f)
	if err != nil {
		return nil, err
	}

	highDiff := diff(high)
	lowDiff := diff(low)

	plusDM := make([]float64, len(high))
	minusDM := make([]float64, len(high))
	for i := range high {
		up := highDiff[i]
		down := -lowDiff[i]
		if math.IsNaN(up) || math.IsNaN(down) {
			plusDM[i] = math.NaN()
			minusDM[i] = math.NaN()
			continue
		}
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	tr := trueRange(high, low, closeC)
	trSum := rollingSum(tr, a.period)
	plusSum := rollingSum(plusDM, a.period)
	minusSum := rollingSum(minusDM, a.period)

	dx := make([]float64, len(high))
	for i := range dx {
		plusDI := 100 * plusSum[i] / trSum[i]
		minusDI := 100 * minusSum[i] / trSum[i]
		dx[i] = 100 * abs(plusDI-minusDI) / (plusDI + minusDI)
	}
	adx := finalize(rollingMean(dx, a.period))
	return f.WithColumn("ADX", adx), nil
}
