package models

import "time"

// Candle represents one validated OHLCV record. Candle series handed to the
// pipeline are assumed chronologically ascending with unique buckets; the
// data-loading collaborator owns that guarantee.
type Candle struct {
	Bucket time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
