package indicators

import "math"

// Rolling-window kernels over plain float64 slices. Windows are trailing and
// inclusive of the current row. A window holding fewer than period defined
// values yields NaN; series shorter than the window yield one trailing
// partial value so the fill pass has something to propagate.

func rollingMean(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 0 {
		return out
	}
	if len(src) < period {
		return partialTail(src, out, mean)
	}
	sum := 0.0
	cnt := 0
	for i, v := range src {
		if !math.IsNaN(v) {
			sum += v
			cnt++
		}
		if i >= period {
			if old := src[i-period]; !math.IsNaN(old) {
				sum -= old
				cnt--
			}
		}
		if i >= period-1 && cnt == period {
			out[i] = sum / float64(period)
		}
	}
	return out
}

func rollingSum(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 0 {
		return out
	}
	if len(src) < period {
		return partialTail(src, out, sum)
	}
	s := 0.0
	cnt := 0
	for i, v := range src {
		if !math.IsNaN(v) {
			s += v
			cnt++
		}
		if i >= period {
			if old := src[i-period]; !math.IsNaN(old) {
				s -= old
				cnt--
			}
		}
		if i >= period-1 && cnt == period {
			out[i] = s
		}
	}
	return out
}

// rollingStd computes the sample standard deviation (n-1 denominator) over
// each full window.
func rollingStd(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 1 {
		return out
	}
	if len(src) < period {
		return partialTail(src, out, sampleStd)
	}
	for i := period - 1; i < len(src); i++ {
		out[i] = sampleStd(src[i-period+1 : i+1])
	}
	return out
}

func rollingMin(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 0 {
		return out
	}
	if len(src) < period {
		return partialTail(src, out, minOf)
	}
	for i := period - 1; i < len(src); i++ {
		out[i] = minOf(src[i-period+1 : i+1])
	}
	return out
}

func rollingMax(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if period <= 0 {
		return out
	}
	if len(src) < period {
		return partialTail(src, out, maxOf)
	}
	for i := period - 1; i < len(src); i++ {
		out[i] = maxOf(src[i-period+1 : i+1])
	}
	return out
}

// ema computes the exponentially weighted mean with smoothing span. Early
// values are partial (weight-corrected) averages rather than NaN, matching
// an adjusted EWM with no minimum-periods floor.
func ema(src []float64, span int) []float64 {
	out := make([]float64, len(src))
	if len(src) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1.0 - alpha
	num := 0.0
	den := 0.0
	for i, v := range src {
		num = v + decay*num
		den = 1.0 + decay*den
		out[i] = num / den
	}
	return out
}

// diff returns src[i] - src[i-1] with NaN at position 0.
func diff(src []float64) []float64 {
	out := nanSlice(len(src))
	for i := 1; i < len(src); i++ {
		out[i] = src[i] - src[i-1]
	}
	return out
}

// shift returns src moved one position forward (prev values), NaN at 0.
func shift(src []float64) []float64 {
	out := nanSlice(len(src))
	for i := 1; i < len(src); i++ {
		out[i] = src[i-1]
	}
	return out
}

// fill resolves undefined values in place: forward-fill from the nearest
// earlier defined value, then back-fill any still-undefined leading run.
func fill(col []float64) []float64 {
	last := math.NaN()
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = last
		} else {
			last = v
		}
	}
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
	return col
}

// finalize applies the fill policy and zeroes any column that never produced
// a defined value (fully degenerate input), keeping the no-NaN invariant.
func finalize(col []float64) []float64 {
	col = fill(col)
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = 0
		}
	}
	return col
}

// partialTail writes stat over the defined prefix values into the last
// position, leaving the rest NaN.
func partialTail(src, out []float64, stat func([]float64) float64) []float64 {
	if len(src) == 0 {
		return out
	}
	defined := make([]float64, 0, len(src))
	for _, v := range src {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) > 0 {
		out[len(out)-1] = stat(defined)
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

func sum(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s
}

func sampleStd(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	ss := 0.0
	nan := false
	for _, v := range vals {
		if math.IsNaN(v) {
			nan = true
			break
		}
		d := v - m
		ss += d * d
	}
	if nan {
		return math.NaN()
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

func minOf(vals []float64) float64 {
	m := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
