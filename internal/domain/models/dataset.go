package models

import "time"

// RunSummary is the persisted record of one dataset-preparation run.
type RunSummary struct {
	RunID          string
	Symbol         string
	Timeframe      string
	From           time.Time
	To             time.Time
	Rows           int
	NumFeatures    int
	TrainRows      int
	ValRows        int
	TestRows       int
	Imbalanced     bool
	ImbalanceRatio float64
	Balanced       bool
	PreparedAt     time.Time
}

// DatasetEvent is the Kafka payload announcing a prepared dataset to the
// training collaborator.
type DatasetEvent struct {
	RunID          string    `json:"run_id"`
	Symbol         string    `json:"symbol"`
	Timeframe      string    `json:"timeframe"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	NumFeatures    int       `json:"n_features"`
	FeatureNames   []string  `json:"feature_names"`
	TrainRows      int       `json:"n_train"`
	ValRows        int       `json:"n_val"`
	TestRows       int       `json:"n_test"`
	Imbalanced     bool      `json:"is_imbalanced"`
	ImbalanceRatio float64   `json:"imbalance_ratio"`
	PreparedAt     time.Time `json:"prepared_at"`
}

// ProgressEvent is pushed over the websocket feed while a run executes.
type ProgressEvent struct {
	RunID     string    `json:"run_id"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"` // "start" | "done" | "error"
	Rows      int       `json:"rows,omitempty"`
	Timestamp time.Time `json:"ts"`
}
