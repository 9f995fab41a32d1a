package indicators

import (
	"fmt"

	"TrendML/internal/domain/models"
)

// Config holds the indicator periods. Zero values fall back to the
// conventional defaults.
type Config struct {
	ATRPeriod       int     `yaml:"atr_period" default:"14"`
	SMAPeriods      []int   `yaml:"sma_periods"`
	BollingerPeriod int     `yaml:"bollinger_period" default:"20"`
	BollingerStdDev float64 `yaml:"bollinger_std_dev" default:"2.0"`
	RSIPeriod       int     `yaml:"rsi_period" default:"14"`
	MACDFast        int     `yaml:"macd_fast" default:"12"`
	MACDSlow        int     `yaml:"macd_slow" default:"26"`
	MACDSignal      int     `yaml:"macd_signal" default:"9"`
	StochPeriod     int     `yaml:"stoch_period" default:"14"`
	StochSmoothing  int     `yaml:"stoch_smoothing" default:"3"`
	ADXPeriod       int     `yaml:"adx_period" default:"14"`
	CCIPeriod       int     `yaml:"cci_period" default:"20"`
}

// DefaultConfig returns the conventional indicator periods.
func DefaultConfig() Config {
	return Config{
		ATRPeriod:       14,
		SMAPeriods:      []int{20, 50},
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		StochPeriod:     14,
		StochSmoothing:  3,
		ADXPeriod:       14,
		CCIPeriod:       20,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.ATRPeriod <= 0 {
		c.ATRPeriod = d.ATRPeriod
	}
	if len(c.SMAPeriods) == 0 {
		c.SMAPeriods = d.SMAPeriods
	}
	if c.BollingerPeriod <= 0 {
		c.BollingerPeriod = d.BollingerPeriod
	}
	if c.BollingerStdDev <= 0 {
		c.BollingerStdDev = d.BollingerStdDev
	}
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = d.RSIPeriod
	}
	if c.MACDFast <= 0 {
		c.MACDFast = d.MACDFast
	}
	if c.MACDSlow <= 0 {
		c.MACDSlow = d.MACDSlow
	}
	if c.MACDSignal <= 0 {
		c.MACDSignal = d.MACDSignal
	}
	if c.StochPeriod <= 0 {
		c.StochPeriod = d.StochPeriod
	}
	if c.StochSmoothing <= 0 {
		c.StochSmoothing = d.StochSmoothing
	}
	if c.ADXPeriod <= 0 {
		c.ADXPeriod = d.ADXPeriod
	}
	if c.CCIPeriod <= 0 {
		c.CCIPeriod = d.CCIPeriod
	}
}

// Pipeline runs the fixed calculator sequence over an accumulating frame.
type Pipeline struct {
	calculators []Calculator
}

// NewPipeline builds the fixed calculator sequence from cfg.
func NewPipeline(cfg Config) *Pipeline {
	cfg.applyDefaults()
	return &Pipeline{
		calculators: []Calculator{
			NewATR(cfg.ATRPeriod),
			NewSMA(cfg.SMAPeriods...),
			NewBollinger(cfg.BollingerPeriod, cfg.BollingerStdDev),
			NewRSI(cfg.RSIPeriod),
			NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
			NewStochastic(cfg.StochPeriod, cfg.StochSmoothing),
			NewADX(cfg.ADXPeriod),
			NewCCI(cfg.CCIPeriod),
		},
	}
}

// Calculate runs every calculator in order and returns the accumulated
// frame. The input frame is never modified.
func (p *Pipeline) Calculate(f *models.Frame) (*models.Frame, error) {
	out := f
	for _, calc := range p.calculators {
		var err error
		out, err = calc.Calculate(out)
		if err != nil {
			return nil, fmt.Errorf("indicator %s: %w", calc.Name(), err)
		}
	}
	return out, nil
}

// IndicatorColumns returns the canonical ordered list of indicator column
// names independent of any particular run. Downstream feature selection
// keys off this list.
func IndicatorColumns() []string {
	return []string{
		"ATR",
		"SMA_20", "SMA_50",
		"BB_Upper", "BB_Middle", "BB_Lower",
		"RSI",
		"MACD", "MACD_Signal", "MACD_Histogram",
		"Stoch_K", "Stoch_D",
		"ADX",
		"CCI",
	}
}
