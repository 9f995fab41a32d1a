package models

import (
	"fmt"
	"time"
)

// Canonical OHLCV column names.
const (
	ColOpen   = "Open"
	ColHigh   = "High"
	ColLow    = "Low"
	ColClose  = "Close"
	ColVolume = "Volume"
)

// Frame is a column-oriented time series table: a shared timestamp index
// plus named float64 columns in insertion order. Frames are value-semantic:
// WithColumn and Slice return new frames and never touch the receiver, so a
// calculator chain can be reordered or parallelized without aliasing bugs.
// Callers must treat slices returned by Column as read-only.
type Frame struct {
	times []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given timestamp index.
func NewFrame(times []time.Time) *Frame {
	return &Frame{
		times: times,
		order: make([]string, 0, 20),
		cols:  make(map[string][]float64, 20),
	}
}

// FrameFromCandles builds the canonical OHLCV frame from a candle series.
func FrameFromCandles(candles []Candle) *Frame {
	n := len(candles)
	times := make([]time.Time, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closeC := make([]float64, n)
	vol := make([]float64, n)
	for i, c := range candles {
		times[i] = c.Bucket
		open[i] = c.Open
		high[i] = c.High
		low[i] = c.Low
		closeC[i] = c.Close
		vol[i] = c.Volume
	}
	f := NewFrame(times)
	f = f.WithColumn(ColOpen, open)
	f = f.WithColumn(ColHigh, high)
	f = f.WithColumn(ColLow, low)
	f = f.WithColumn(ColClose, closeC)
	f = f.WithColumn(ColVolume, vol)
	return f
}

// Len returns the row count.
func (f *Frame) Len() int { return len(f.times) }

// Times returns the timestamp index. May be empty for synthetic frames.
func (f *Frame) Times() []time.Time { return f.times }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// HasColumn reports whether the frame holds the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column values. The returned slice is shared with
// the frame and must not be written to.
func (f *Frame) Column(name string) ([]float64, error) {
	v, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("frame: no column %q", name)
	}
	return v, nil
}

// WithColumn returns a new frame with the given column set. Existing columns
// are shared, not copied; a column with the same name is replaced. The values
// slice must match the frame's row count.
func (f *Frame) WithColumn(name string, values []float64) *Frame {
	if len(values) != len(f.times) {
		panic(fmt.Sprintf("frame: column %q has %d values for %d rows", name, len(values), len(f.times)))
	}
	out := &Frame{
		times: f.times,
		order: make([]string, len(f.order), len(f.order)+1),
		cols:  make(map[string][]float64, len(f.cols)+1),
	}
	copy(out.order, f.order)
	for k, v := range f.cols {
		out.cols[k] = v
	}
	if _, exists := out.cols[name]; !exists {
		out.order = append(out.order, name)
	}
	out.cols[name] = values
	return out
}

// Slice returns a new frame over rows [from, to). Column data is shared.
func (f *Frame) Slice(from, to int) *Frame {
	if from < 0 {
		from = 0
	}
	if to > len(f.times) {
		to = len(f.times)
	}
	if from > to {
		from = to
	}
	out := &Frame{
		times: f.times[from:to],
		order: make([]string, len(f.order)),
		cols:  make(map[string][]float64, len(f.cols)),
	}
	copy(out.order, f.order)
	for _, name := range f.order {
		out.cols[name] = f.cols[name][from:to]
	}
	return out
}

// Matrix extracts the named columns as row-major vectors. Returns an error
// when any column is missing.
func (f *Frame) Matrix(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}
	rows := make([][]float64, f.Len())
	for i := range rows {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return rows, nil
}
