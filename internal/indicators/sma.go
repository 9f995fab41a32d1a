package indicators

import (
	"fmt"

	"TrendML/internal/domain/models"
)

// SMA computes simple moving averages of Close, one column per period.
type SMA struct {
	periods []int
}

// NewSMA creates an SMA calculator. Defaults to periods 20 and 50 when none
// are given.
func NewSMA(periods ...int) *SMA {
	if len(periods) == 0 {
		periods = []int{20, 50}
	}
	return &SMA{periods: periods}
}

func (s *SMA) Name() string { return "SMA" }

func (s *SMA) Columns() []string {
	out := make([]string, len(s.periods))
	for i, p := range s.periods {
		out[i] = fmt.Sprintf("SMA_%d", p)
	}
	return out
}

func (s *SMA) Calculate(f *models.Frame) (*models.Frame, error) {
	closeC, err := f.Column(models.ColClose)
	if err != nil {
		return nil, err
	}
	out := f
	for _, p := range s.periods {
		col := finalize(rollingMean(closeC, p))
		out = out.WithColumn(fmt.Sprintf("SMA_%d", p), col)
	}
	return out, nil
}
