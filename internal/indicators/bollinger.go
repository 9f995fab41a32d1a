package indicators

import "TrendML/internal/domain/models"

// Bollinger computes Bollinger Bands: a middle SMA of Close plus upper and
// lower bands at stdDev sample standard deviations.
type Bollinger struct {
	period int
	stdDev float64
}

// NewBollinger creates a Bollinger Bands calculator (typically 20, 2.0).
func NewBollinger(period int, stdDev float64) *Bollinger {
	return &Bollinger{period: period, stdDev: stdDev}
}

func (b *Bollinger) Name() string { return "BollingerBands" }

func (b *Bollinger) Columns() []string {
	return []string{"BB_Middle", "BB_Upper", "BB_Lower"}
}

func (b *Bollinger) Calculate(f *models.Frame) (*models.Frame, error) {
	closeC, err := f.Column(models.ColClose)
	if err != nil {
		return nil, err
	}
	middle := rollingMean(closeC, b.period)
	std := rollingStd(closeC, b.period)

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i := range middle {
		upper[i] = middle[i] + std[i]*b.stdDev
		lower[i] = middle[i] - std[i]*b.stdDev
	}

	out := f.WithColumn("BB_Middle", finalize(middle))
	out = out.WithColumn("BB_Upper", finalize(upper))
	out = out.WithColumn("BB_Lower", finalize(lower))
	return out, nil
}
