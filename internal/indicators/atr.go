package indicators

import "TrendML/internal/domain/models"

// ATR computes the Average True Range: a simple rolling mean of the true
// range over the configured period.
type ATR struct {
	period int
}

// NewATR creates an ATR calculator with the given period (typically 14).
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string { return "ATR" }

func (a *ATR) Columns() []string { return []string{"ATR"} }

func (a *ATR) Calculate(f *models.Frame) (*models.Frame, error) {
	high, low, closeC, err := ohlc(f)
	if err != nil {
		return nil, err
	}
	tr := trueRange(high, low, closeC)
	atr := finalize(rollingMean(tr, a.period))
	return f.WithColumn("ATR", atr), nil
}
