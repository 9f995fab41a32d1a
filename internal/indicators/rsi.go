package indicators

import (
	"math"

	"TrendML/internal/domain/models"
)

// RSI computes the Relative Strength Index over simple rolling averages of
// gains and losses. A window with zero average loss and positive average
// gain yields RSI 100; a fully flat window is undefined and resolved by the
// fill policy.
type RSI struct {
	period int
}

// NewRSI creates an RSI calculator with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string { return "RSI" }

func (r *RSI) Columns() []string { return []string{"RSI"} }

func (r *RSI) Calculate(f *models.Frame) (*models.Frame, error) {
	closeC, err := f.Column(models.ColClose)
	if err != nil {
		return nil, err
	}
	delta := diff(closeC)
	gains := make([]float64, len(delta))
	losses := make([]float64, len(delta))
	for i, d := range delta {
		switch {
		case math.IsNaN(d):
			gains[i] = math.NaN()
			losses[i] = math.NaN()
		case d > 0:
			gains[i] = d
		default:
			losses[i] = -d
		}
	}

	avgGains := rollingMean(gains, r.period)
	avgLosses := rollingMean(losses, r.period)

	rsi := make([]float64, len(closeC))
	for i := range rsi {
		if math.IsNaN(avgGains[i]) || math.IsNaN(avgLosses[i]) {
			rsi[i] = math.NaN()
			continue
		}
		if avgLosses[i] == 0 {
			if avgGains[i] == 0 {
				// flat window, no direction
				rsi[i] = math.NaN()
				continue
			}
			rsi[i] = 100
			continue
		}
		rs := avgGains[i] / avgLosses[i]
		rsi[i] = 100 - 100/(1+rs)
	}
	return f.WithColumn("RSI", finalize(rsi)), nil
}
