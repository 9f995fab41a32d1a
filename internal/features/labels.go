// Package features prepares supervised-learning inputs from indicator
// frames: labeling, normalization, class balancing and temporal splitting,
// orchestrated by Engineer.
package features

import (
	"TrendML/internal/domain/models"
)

// LabelCreator derives binary next-period direction labels from Close.
type LabelCreator struct {
	threshold float64
}

// NewLabelCreator creates a label creator. threshold is the fractional move
// size for an "up" label (0.005 = 0.5%).
func NewLabelCreator(threshold float64) *LabelCreator {
	return &LabelCreator{threshold: threshold}
}

// Labels returns one label per row except the last: label[i] is 1 when
// Close[i+1] > Close[i]*(1+threshold), else 0. The final row has no next
// close and gets no label.
func (l *LabelCreator) Labels(f *models.Frame) ([]int, error) {
	closeC, err := f.Column(models.ColClose)
	if err != nil {
		return nil, err
	}
	if len(closeC) < 2 {
		return []int{}, nil
	}
	labels := make([]int, len(closeC)-1)
	for i := 0; i < len(closeC)-1; i++ {
		if closeC[i+1] > closeC[i]*(1+l.threshold) {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Named maps numeric labels to "up"/"down".
func (l *LabelCreator) Named(labels []int) []string {
	out := make([]string, len(labels))
	for i, v := range labels {
		if v == 1 {
			out[i] = "up"
		} else {
			out[i] = "down"
		}
	}
	return out
}
