package features

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Oversampler corrects a skewed label distribution by producing additional
// minority-class rows. Chosen at construction: SMOTE when synthetic
// oversampling is wanted, Passthrough to degrade gracefully.
type Oversampler interface {
	Resample(X [][]float64, y []int) ([][]float64, []int, error)
}

// Passthrough returns its input unchanged.
type Passthrough struct{}

func (Passthrough) Resample(X [][]float64, y []int) ([][]float64, []int, error) {
	return X, y, nil
}

// SMOTE oversamples the minority class by interpolating between a minority
// sample and one of its k nearest minority neighbours.
type SMOTE struct {
	k   int
	rng *rand.Rand
}

// NewSMOTE creates a SMOTE oversampler with k neighbours and a seeded RNG
// for reproducible synthetic rows.
func NewSMOTE(k int, seed int64) *SMOTE {
	if k <= 0 {
		k = 5
	}
	return &SMOTE{k: k, rng: rand.New(rand.NewSource(seed))}
}

func (s *SMOTE) Resample(X [][]float64, y []int) ([][]float64, []int, error) {
	if len(X) != len(y) {
		return nil, nil, fmt.Errorf("smote: %d rows vs %d labels", len(X), len(y))
	}
	counts := classCounts(y)
	if len(counts) != 2 {
		return X, y, nil
	}

	minority, majority := 0, 1
	if counts[0] > counts[1] {
		minority, majority = 1, 0
	}
	need := counts[majority] - counts[minority]
	if need == 0 {
		return X, y, nil
	}

	var minorityRows [][]float64
	for i, label := range y {
		if label == minority {
			minorityRows = append(minorityRows, X[i])
		}
	}
	if len(minorityRows) < 2 {
		// nothing to interpolate between
		return X, y, nil
	}

	outX := append(make([][]float64, 0, len(X)+need), X...)
	outY := append(make([]int, 0, len(y)+need), y...)
	for i := 0; i < need; i++ {
		base := minorityRows[s.rng.Intn(len(minorityRows))]
		neighbour := s.pickNeighbour(minorityRows, base)
		t := s.rng.Float64()
		synth := make([]float64, len(base))
		for j := range base {
			synth[j] = base[j] + t*(neighbour[j]-base[j])
		}
		outX = append(outX, synth)
		outY = append(outY, minority)
	}
	return outX, outY, nil
}

// pickNeighbour returns a random one of the k nearest minority rows to base
// (excluding base itself).
func (s *SMOTE) pickNeighbour(rows [][]float64, base []float64) []float64 {
	type scored struct {
		idx  int
		dist float64
	}
	candidates := make([]scored, 0, len(rows))
	for i, r := range rows {
		if &r[0] == &base[0] {
			continue
		}
		candidates = append(candidates, scored{idx: i, dist: floats.Distance(base, r, 2)})
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })
	k := s.k
	if k > len(candidates) {
		k = len(candidates)
	}
	return rows[candidates[s.rng.Intn(k)].idx]
}

// ImbalanceInfo describes the label distribution skew.
type ImbalanceInfo struct {
	Imbalanced   bool
	Ratio        float64
	Distribution map[int]float64
	Threshold    float64
}

// Balancer detects label skew, computes inverse-frequency class weights and
// delegates resampling to its oversampler.
type Balancer struct {
	threshold float64
	sampler   Oversampler
}

// NewBalancer creates a balancer. threshold is the skew tolerance: a
// larger/smaller class ratio above 1+threshold flags imbalance. A nil
// sampler degrades to Passthrough.
func NewBalancer(threshold float64, sampler Oversampler) *Balancer {
	if sampler == nil {
		sampler = Passthrough{}
	}
	return &Balancer{threshold: threshold, sampler: sampler}
}

// DetectImbalance computes the two-class frequency ratio and flags skew
// beyond the threshold. Non-binary label sets report ratio 1.0.
func (b *Balancer) DetectImbalance(y []int) ImbalanceInfo {
	counts := classCounts(y)
	total := len(y)

	dist := make(map[int]float64, len(counts))
	for c, n := range counts {
		dist[c] = float64(n) / float64(total)
	}

	ratio := 1.0
	if len(counts) == 2 {
		c0 := float64(counts[0])
		c1 := float64(counts[1])
		ratio = c0 / c1
		if ratio < 1 {
			ratio = 1 / ratio
		}
	}

	return ImbalanceInfo{
		Imbalanced:   ratio > 1+b.threshold,
		Ratio:        ratio,
		Distribution: dist,
		Threshold:    1 + b.threshold,
	}
}

// ClassWeights computes weight[c] = total / (numClasses * count[c]),
// regardless of whether imbalance was flagged.
func (b *Balancer) ClassWeights(y []int) map[int]float64 {
	counts := classCounts(y)
	total := float64(len(y))
	weights := make(map[int]float64, len(counts))
	for c, n := range counts {
		weights[c] = total / (float64(len(counts)) * float64(n))
	}
	return weights
}

// Balance resamples X and y through the configured oversampler when the
// label distribution is flagged imbalanced; otherwise returns the input
// unchanged.
func (b *Balancer) Balance(X [][]float64, y []int) ([][]float64, []int, error) {
	info := b.DetectImbalance(y)
	if !info.Imbalanced {
		return X, y, nil
	}
	return b.sampler.Resample(X, y)
}

func classCounts(y []int) map[int]int {
	counts := make(map[int]int, 2)
	for _, v := range y {
		counts[v]++
	}
	return counts
}
