package features

import (
	"errors"
	"fmt"

	"TrendML/internal/domain/models"
)

// ErrNoFeatureColumns is the configuration error for an empty feature set.
var ErrNoFeatureColumns = errors.New("no feature columns configured")

// EngineerConfig tunes the feature-preparation pipeline.
type EngineerConfig struct {
	// FeatureColumns selects the indicator columns used as features.
	FeatureColumns []string

	// LabelThreshold is the fractional move for an "up" label.
	LabelThreshold float64

	TrainRatio float64
	ValRatio   float64
	TestRatio  float64

	// ImbalanceThreshold tunes skew detection (0.3 flags above 1.3:1).
	ImbalanceThreshold float64

	// Oversampler handles flagged imbalance. Nil degrades to Passthrough.
	Oversampler Oversampler

	// FitOnTrainOnly fits the normalizer on the leading train span instead
	// of the full feature set. Fitting on everything leaks validation and
	// test statistics into the transform; enabling this changes numeric
	// outputs.
	FitOnTrainOnly bool
}

// Metadata summarizes a prepared dataset.
type Metadata struct {
	NumFeatures       int
	FeatureNames      []string
	NumSamples        int
	TrainRows         int
	ValRows           int
	TestRows          int
	ClassDistribution map[int]float64
	Imbalanced        bool
	ImbalanceRatio    float64
	Balanced          bool
	ClassWeights      map[int]float64
}

// Dataset is the bundle handed to the training collaborator.
type Dataset struct {
	XTrain [][]float64
	XVal   [][]float64
	XTest  [][]float64
	YTrain []int
	YVal   []int
	YTest  []int

	Metadata Metadata

	// Normalizer is the fitted transform, kept for inverse-transforming
	// predictions or normalizing held-out data.
	Normalizer *Normalizer
}

// Engineer orchestrates labeling, column selection, normalization, class
// balancing and temporal splitting into one call.
type Engineer struct {
	cfg      EngineerConfig
	labels   *LabelCreator
	splitter *Splitter
	balancer *Balancer
}

// NewEngineer validates cfg (ratio errors surface here) and builds the
// engineer.
func NewEngineer(cfg EngineerConfig) (*Engineer, error) {
	if cfg.LabelThreshold == 0 {
		cfg.LabelThreshold = 0.005
	}
	if cfg.TrainRatio == 0 && cfg.ValRatio == 0 && cfg.TestRatio == 0 {
		cfg.TrainRatio, cfg.ValRatio, cfg.TestRatio = 0.7, 0.15, 0.15
	}
	if cfg.ImbalanceThreshold == 0 {
		cfg.ImbalanceThreshold = 0.3
	}
	splitter, err := NewSplitter(cfg.TrainRatio, cfg.ValRatio, cfg.TestRatio)
	if err != nil {
		return nil, err
	}
	return &Engineer{
		cfg:      cfg,
		labels:   NewLabelCreator(cfg.LabelThreshold),
		splitter: splitter,
		balancer: NewBalancer(cfg.ImbalanceThreshold, cfg.Oversampler),
	}, nil
}

// PrepareFeatures turns an indicator frame into a training-ready dataset:
// labels from Close, last (labelless) row dropped, configured columns
// selected, normalized, optionally balanced, weighted and temporally split.
func (e *Engineer) PrepareFeatures(f *models.Frame, applyBalancing bool) (*Dataset, error) {
	if len(e.cfg.FeatureColumns) == 0 {
		return nil, ErrNoFeatureColumns
	}

	y, err := e.labels.Labels(f)
	if err != nil {
		return nil, err
	}

	// Drop the final row so features align row-for-row with labels.
	aligned := f.Slice(0, f.Len()-1)
	X, err := aligned.Matrix(e.cfg.FeatureColumns)
	if err != nil {
		return nil, fmt.Errorf("select features: %w", err)
	}

	normalizer := NewNormalizer()
	fitSpan := X
	if e.cfg.FitOnTrainOnly {
		fitSpan = X[:e.splitter.TrainEnd(len(X))]
	}
	if err := normalizer.Fit(fitSpan, e.cfg.FeatureColumns); err != nil {
		return nil, err
	}
	X, err = normalizer.Transform(X)
	if err != nil {
		return nil, err
	}

	info := e.balancer.DetectImbalance(y)
	numSamples := len(X)

	balanced := false
	if applyBalancing && info.Imbalanced {
		resX, resY, err := e.balancer.Balance(X, y)
		if err != nil {
			return nil, fmt.Errorf("balance: %w", err)
		}
		balanced = len(resY) != len(y)
		X, y = resX, resY
	}

	weights := e.balancer.ClassWeights(y)

	split, err := e.splitter.Split(X, y)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		XTrain: split.XTrain,
		XVal:   split.XVal,
		XTest:  split.XTest,
		YTrain: split.YTrain,
		YVal:   split.YVal,
		YTest:  split.YTest,
		Metadata: Metadata{
			NumFeatures:       len(e.cfg.FeatureColumns),
			FeatureNames:      append([]string(nil), e.cfg.FeatureColumns...),
			NumSamples:        numSamples,
			TrainRows:         len(split.XTrain),
			ValRows:           len(split.XVal),
			TestRows:          len(split.XTest),
			ClassDistribution: info.Distribution,
			Imbalanced:        info.Imbalanced,
			ImbalanceRatio:    info.Ratio,
			Balanced:          balanced,
			ClassWeights:      weights,
		},
		Normalizer: normalizer,
	}, nil
}
