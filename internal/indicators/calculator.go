// Package indicators computes technical indicator columns over OHLCV frames.
//
// Each calculator is a value implementing the Calculator interface: it takes
// a frame, appends its own columns and returns a new frame without mutating
// the input or any existing column. The set is closed; Pipeline runs the
// fixed sequence and owns the canonical column list.
package indicators

import "TrendML/internal/domain/models"

// Calculator derives one or more indicator columns from an OHLCV frame.
type Calculator interface {
	// Name returns the indicator name (e.g., "RSI", "MACD").
	Name() string

	// Columns returns the column names this calculator appends, in order.
	Columns() []string

	// Calculate returns a new frame with the calculator's columns added.
	// Output columns are forward/back-filled and contain no NaN for any
	// input with at least one row.
	Calculate(f *models.Frame) (*models.Frame, error)
}

// trueRange computes max(High-Low, |High-prevClose|, |Low-prevClose|) per
// row. Row 0 has no previous close, so only High-Low participates there.
func trueRange(high, low, closeC []float64) []float64 {
	prev := shift(closeC)
	out := make([]float64, len(high))
	for i := range high {
		tr := high[i] - low[i]
		if i > 0 {
			hc := abs(high[i] - prev[i])
			lc := abs(low[i] - prev[i])
			if hc > tr {
				tr = hc
			}
			if lc > tr {
				tr = lc
			}
		}
		out[i] = tr
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func ohlc(f *models.Frame) (high, low, closeC []float64, err error) {
	if high, err = f.Column(models.ColHigh); err != nil {
		return nil, nil, nil, err
	}
	if low, err = f.Column(models.ColLow); err != nil {
		return nil, nil, nil, err
	}
	if closeC, err = f.Column(models.ColClose); err != nil {
		return nil, nil, nil, err
	}
	return high, low, closeC, nil
}
