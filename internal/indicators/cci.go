package indicators

import (
	"math"

	"TrendML/internal/domain/models"
)

// CCI computes the Commodity Channel Index over the typical price
// (High+Low+Close)/3, scaled by 0.015 times the rolling mean absolute
// deviation of the typical price from its own rolling mean.
type CCI struct {
	period int
}

// NewCCI creates a CCI calculator with the given period (typically 20).
func NewCCI(period int) *CCI {
	return &CCI{period: period}
}

func (c *CCI) Name() string { return "CCI" }

func (c *CCI) Columns() []string { return []string{"CCI"} }

func (c *CCI) Calculate(f *models.Frame) (*models.Frame, error) {
	high, low, closeC, err := ohlc(f)
	if err != nil {
		return nil, err
	}
	tp := make([]float64, len(high))
	for i := range tp {
		tp[i] = (high[i] + low[i] + closeC[i]) / 3
	}
	smaTP := rollingMean(tp, c.period)
	meanDev := rollingMAD(tp, c.period)

	cci := make([]float64, len(tp))
	for i := range cci {
		dev := 0.015 * meanDev[i]
		if dev == 0 {
			cci[i] = math.NaN()
			continue
		}
		cci[i] = (tp[i] - smaTP[i]) / dev
	}
	return f.WithColumn("CCI", finalize(cci)), nil
}

// rollingMAD computes the mean absolute deviation of each window from the
// window's own mean.
func rollingMAD(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 0 {
		return out
	}
	mad := func(vals []float64) float64 {
		m := mean(vals)
		s := 0.0
		for _, v := range vals {
			s += abs(v - m)
		}
		return s / float64(len(vals))
	}
	if len(src) < period {
		return partialTail(src, out, mad)
	}
	for i := period - 1; i < len(src); i++ {
		out[i] = mad(src[i-period+1 : i+1])
	}
	return out
}
