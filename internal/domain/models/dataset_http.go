package models

// Requests for dataset HTTP endpoints. Defined in domain for consistency and reuse.

type PrepareDatasetRequest struct {
	Symbol         string `query:"symbol" json:"symbol" validate:"required"`
	From           string `query:"from" json:"from"`
	To             string `query:"to" json:"to"`
	TF             string `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 5m 15m 1h 1d"`
	ApplyBalancing *bool  `query:"apply_balancing" json:"apply_balancing"`
}

type GetRunRequest struct {
	RunID string `param:"id" json:"run_id" validate:"required"`
}
