package indicators

import "TrendML/internal/domain/models"

// MACD computes Moving Average Convergence Divergence: the fast/slow EMA
// difference, its EMA signal line and the histogram between them. EMAs have
// no minimum-periods floor, so no fill is needed.
type MACD struct {
	fast   int
	slow   int
	signal int
}

// NewMACD creates a MACD calculator (typically 12, 26, 9).
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{fast: fast, slow: slow, signal: signal}
}

func (m *MACD) Name() string { return "MACD" }

func (m *MACD) Columns() []string {
	return []string{"MACD", "MACD_Signal", "MACD_Histogram"}
}

func (m *MACD) Calculate(f *models.Frame) (*models.Frame, error) {
	closeC, err := f.Column(models.ColClose)
	if err != nil {
		return nil, err
	}
	fast := ema(closeC, m.fast)
	slow := ema(closeC, m.slow)

	macd := make([]float64, len(closeC))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}
	signal := ema(macd, m.signal)
	hist := make([]float64, len(closeC))
	for i := range hist {
		hist[i] = macd[i] - signal[i]
	}

	out := f.WithColumn("MACD", macd)
	out = out.WithColumn("MACD_Signal", signal)
	out = out.WithColumn("MACD_Histogram", hist)
	return out, nil
}
