package indicators_test

import (
	"math"
	"testing"
	"time"

	"TrendML/internal/domain/models"
	"TrendML/internal/indicators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticFrame builds an n-row OHLCV frame with Close walking up by step
// and a small High/Low range around it.
func syntheticFrame(n int, start, step float64) *models.Frame {
	candles := make([]models.Candle, n)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := start + step*float64(i)
		candles[i] = models.Candle{
			Bucket: t0.Add(time.Duration(i) * 24 * time.Hour),
			Symbol: "TEST",
			Open:   c - 0.2,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return models.FrameFromCandles(candles)
}

// flatFrame builds a zero-volatility frame where High == Low == Close.
func flatFrame(n int, price float64) *models.Frame {
	candles := make([]models.Candle, n)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		candles[i] = models.Candle{
			Bucket: t0.Add(time.Duration(i) * 24 * time.Hour),
			Symbol: "FLAT",
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 500,
		}
	}
	return models.FrameFromCandles(candles)
}

func TestPipeline_RowCountPreserved(t *testing.T) {
	for _, n := range []int{1, 5, 19, 60, 120} {
		f := syntheticFrame(n, 100, 1)
		out, err := indicators.NewPipeline(indicators.Config{}).Calculate(f)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, n, out.Len(), "row count must survive the pipeline for n=%d", n)
	}
}

func TestPipeline_NoNaNAnywhere(t *testing.T) {
	for _, n := range []int{1, 2, 19, 60} {
		f := syntheticFrame(n, 100, 1)
		out, err := indicators.NewPipeline(indicators.Config{}).Calculate(f)
		require.NoError(t, err)
		for _, name := range indicators.IndicatorColumns() {
			col, err := out.Column(name)
			require.NoError(t, err, "column %s missing for n=%d", name, n)
			for i, v := range col {
				assert.False(t, math.IsNaN(v), "%s[%d] is NaN for n=%d", name, i, n)
				assert.False(t, math.IsInf(v, 0), "%s[%d] is Inf for n=%d", name, i, n)
			}
		}
	}
}

func TestPipeline_DoesNotMutateInput(t *testing.T) {
	f := syntheticFrame(60, 100, 1)
	before := f.Columns()

	_, err := indicators.NewPipeline(indicators.Config{}).Calculate(f)
	require.NoError(t, err)

	assert.Equal(t, before, f.Columns(), "input frame gained columns")
	closeC, err := f.Column(models.ColClose)
	require.NoError(t, err)
	assert.Equal(t, 100.0, closeC[0])
}

func TestPipeline_CanonicalColumnsPresent(t *testing.T) {
	f := syntheticFrame(60, 100, 1)
	out, err := indicators.NewPipeline(indicators.Config{}).Calculate(f)
	require.NoError(t, err)

	for _, name := range indicators.IndicatorColumns() {
		assert.True(t, out.HasColumn(name), "missing canonical column %s", name)
	}
}

func TestATR_ZeroVolatility(t *testing.T) {
	f := flatFrame(30, 250)
	out, err := indicators.NewATR(14).Calculate(f)
	require.NoError(t, err)

	atr, err := out.Column("ATR")
	require.NoError(t, err)
	for i, v := range atr {
		assert.Equal(t, 0.0, v, "ATR[%d] on flat prices", i)
	}
}

func TestSMA_ShorterThanWindow(t *testing.T) {
	f := syntheticFrame(19, 100, 1)
	out, err := indicators.NewSMA(20).Calculate(f)
	require.NoError(t, err)

	sma, err := out.Column("SMA_20")
	require.NoError(t, err)
	require.Len(t, sma, 19)

	// The partial mean over all 19 closes propagates to every row.
	want := 109.0 // mean of 100..118
	for i, v := range sma {
		assert.False(t, math.IsNaN(v), "SMA_20[%d] undefined", i)
		assert.InDelta(t, want, v, 1e-9, "SMA_20[%d]", i)
	}
}

func TestSMA_KnownWindowValues(t *testing.T) {
	f := syntheticFrame(25, 100, 1)
	out, err := indicators.NewSMA(5).Calculate(f)
	require.NoError(t, err)

	sma, err := out.Column("SMA_5")
	require.NoError(t, err)
	// At i=4 the window is 100..104, mean 102; each later step shifts by 1.
	for i := 4; i < 25; i++ {
		assert.InDelta(t, 102.0+float64(i-4), sma[i], 1e-9, "SMA_5[%d]", i)
	}
	// Leading rows back-fill from the first full window.
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 102.0, sma[i], 1e-9, "SMA_5[%d] backfill", i)
	}
}

func TestRSI_AllGains(t *testing.T) {
	f := syntheticFrame(40, 100, 2)
	out, err := indicators.NewRSI(14).Calculate(f)
	require.NoError(t, err)

	rsi, err := out.Column("RSI")
	require.NoError(t, err)
	for i, v := range rsi {
		assert.InDelta(t, 100.0, v, 1e-9, "RSI[%d] on monotone gains", i)
	}
}

func TestRSI_Range(t *testing.T) {
	// Alternating up/down closes keep RSI strictly inside (0, 100).
	n := 60
	candles := make([]models.Candle, n)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			price += 3
		} else {
			price -= 1
		}
		candles[i] = models.Candle{
			Bucket: t0.Add(time.Duration(i) * time.Hour),
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1,
		}
	}
	out, err := indicators.NewRSI(14).Calculate(models.FrameFromCandles(candles))
	require.NoError(t, err)

	rsi, err := out.Column("RSI")
	require.NoError(t, err)
	for i := 14; i < n; i++ {
		assert.Greater(t, rsi[i], 0.0, "RSI[%d]", i)
		assert.Less(t, rsi[i], 100.0, "RSI[%d]", i)
	}
}

func TestBollinger_BandOrdering(t *testing.T) {
	f := syntheticFrame(60, 100, 1)
	out, err := indicators.NewBollinger(20, 2.0).Calculate(f)
	require.NoError(t, err)

	upper, _ := out.Column("BB_Upper")
	middle, _ := out.Column("BB_Middle")
	lower, _ := out.Column("BB_Lower")
	for i := range upper {
		assert.GreaterOrEqual(t, upper[i], middle[i], "BB_Upper[%d] < BB_Middle", i)
		assert.GreaterOrEqual(t, middle[i], lower[i], "BB_Middle[%d] < BB_Lower", i)
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	f := syntheticFrame(80, 100, 0.5)
	out, err := indicators.NewMACD(12, 26, 9).Calculate(f)
	require.NoError(t, err)

	macd, _ := out.Column("MACD")
	signal, _ := out.Column("MACD_Signal")
	hist, _ := out.Column("MACD_Histogram")
	for i := range macd {
		assert.InDelta(t, macd[i]-signal[i], hist[i], 1e-12, "histogram[%d]", i)
	}
}

func TestStochastic_Bounds(t *testing.T) {
	f := syntheticFrame(60, 100, 1)
	out, err := indicators.NewStochastic(14, 3).Calculate(f)
	require.NoError(t, err)

	k, _ := out.Column("Stoch_K")
	d, _ := out.Column("Stoch_D")
	for i := range k {
		assert.GreaterOrEqual(t, k[i], 0.0, "Stoch_K[%d]", i)
		assert.LessOrEqual(t, k[i], 100.0, "Stoch_K[%d]", i)
		assert.GreaterOrEqual(t, d[i], 0.0, "Stoch_D[%d]", i)
		assert.LessOrEqual(t, d[i], 100.0, "Stoch_D[%d]", i)
	}
}

func TestADX_Bounds(t *testing.T) {
	f := syntheticFrame(90, 100, 1)
	out, err := indicators.NewADX(14).Calculate(f)
	require.NoError(t, err)

	adx, _ := out.Column("ADX")
	for i := range adx {
		assert.GreaterOrEqual(t, adx[i], 0.0, "ADX[%d]", i)
		assert.LessOrEqual(t, adx[i], 100.0, "ADX[%d]", i)
	}
}

func TestCCI_FlatIsFilledToZero(t *testing.T) {
	// Flat prices make the mean deviation zero everywhere: the column never
	// produces a defined value and degrades to zero.
	f := flatFrame(40, 100)
	out, err := indicators.NewCCI(20).Calculate(f)
	require.NoError(t, err)

	cci, err := out.Column("CCI")
	require.NoError(t, err)
	for i, v := range cci {
		assert.Equal(t, 0.0, v, "CCI[%d] on flat prices", i)
	}
}

func TestCalculators_ColumnsMatchOutput(t *testing.T) {
	f := syntheticFrame(60, 100, 1)
	calcs := []indicators.Calculator{
		indicators.NewATR(14),
		indicators.NewSMA(20, 50),
		indicators.NewBollinger(20, 2.0),
		indicators.NewRSI(14),
		indicators.NewMACD(12, 26, 9),
		indicators.NewStochastic(14, 3),
		indicators.NewADX(14),
		indicators.NewCCI(20),
	}
	for _, c := range calcs {
		out, err := c.Calculate(f)
		require.NoError(t, err, c.Name())
		for _, name := range c.Columns() {
			assert.True(t, out.HasColumn(name), "%s promised column %s", c.Name(), name)
		}
	}
}
