package indicators

import (
	"math"

	"TrendML/internal/domain/models"
)

// Stochastic computes the Stochastic Oscillator: %K locates Close within the
// rolling High/Low range, %D smooths %K. A flat range (high == low over the
// whole window) is undefined and resolved by the fill policy.
type Stochastic struct {
	period    int
	smoothing int
}

// NewStochastic creates a Stochastic calculator (typically 14, 3).
func NewStochastic(period, smoothing int) *Stochastic {
	return &Stochastic{period: period, smoothing: smoothing}
}

func (s *Stochastic) Name() string { return "Stochastic" }

func (s *Stochastic) Columns() []string { return []string{"Stoch_K", "Stoch_D"} }

func (s *Stochastic) Calculate(f *models.Frame) (*models.Frame, error) {
	high, low, closeC, err := ohlc(f)
	if err != nil {
		return nil, err
	}
	lowest := rollingMin(low, s.period)
	highest := rollingMax(high, s.period)

	k := make([]float64, len(closeC))
	for i := range k {
		span := highest[i] - lowest[i]
		if span == 0 {
			k[i] = math.NaN()
			continue
		}
		k[i] = 100 * (closeC[i] - lowest[i]) / span
	}
	d := rollingMean(k, s.smoothing)

	out := f.WithColumn("Stoch_K", finalize(k))
	out = out.WithColumn("Stoch_D", finalize(d))
	return out, nil
}
