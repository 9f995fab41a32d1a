package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"TrendML/internal/domain/models"
	pkgch "TrendML/pkg/clickhouse"
)

// CHRunStore persists dataset-run summaries in ClickHouse.
type CHRunStore struct {
	db    *sql.DB
	table string
}

// NewCHRunStore creates a run store over an established ClickHouse client.
func NewCHRunStore(ch *pkgch.Client, table string) *CHRunStore {
	if table == "" {
		table = "trendml.dataset_runs"
	}
	return &CHRunStore{db: ch.DB(), table: table}
}

func (s *CHRunStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            run_id          String,
            symbol          LowCardinality(String),
            timeframe       LowCardinality(String),
            from_ts         DateTime64(3),
            to_ts           DateTime64(3),
            rows            UInt32,
            n_features      UInt16,
            n_train         UInt32,
            n_val           UInt32,
            n_test          UInt32,
            is_imbalanced   UInt8,
            imbalance_ratio Float64,
            is_balanced     UInt8,
            prepared_at     DateTime64(3)
        ) ENGINE = MergeTree()
        ORDER BY (symbol, prepared_at)
    `, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init run store: %w", err)
	}
	return nil
}

func (s *CHRunStore) StoreRun(ctx context.Context, run *models.RunSummary) error {
	q := fmt.Sprintf(`
        INSERT INTO %s
            (run_id, symbol, timeframe, from_ts, to_ts, rows, n_features,
             n_train, n_val, n_test, is_imbalanced, imbalance_ratio,
             is_balanced, prepared_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, s.table)
	_, err := s.db.ExecContext(ctx, q,
		run.RunID,
		run.Symbol,
		run.Timeframe,
		run.From,
		run.To,
		uint32(run.Rows),
		uint16(run.NumFeatures),
		uint32(run.TrainRows),
		uint32(run.ValRows),
		uint32(run.TestRows),
		boolToUInt8(run.Imbalanced),
		run.ImbalanceRatio,
		boolToUInt8(run.Balanced),
		run.PreparedAt,
	)
	if err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

func (s *CHRunStore) GetRun(ctx context.Context, runID string) (*models.RunSummary, error) {
	q := fmt.Sprintf(`
        SELECT run_id, symbol, timeframe, from_ts, to_ts, rows, n_features,
               n_train, n_val, n_test, is_imbalanced, imbalance_ratio,
               is_balanced, prepared_at
        FROM %s
        WHERE run_id = ?
        ORDER BY prepared_at DESC
        LIMIT 1
    `, s.table)
	row := s.db.QueryRowContext(ctx, q, runID)

	var (
		run                       models.RunSummary
		rows, nTrain, nVal, nTest uint32
		nFeatures                 uint16
		imbalanced, balanced      uint8
		fromTS, toTS, preparedAt  time.Time
	)
	err := row.Scan(&run.RunID, &run.Symbol, &run.Timeframe, &fromTS, &toTS,
		&rows, &nFeatures, &nTrain, &nVal, &nTest,
		&imbalanced, &run.ImbalanceRatio, &balanced, &preparedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.From = fromTS
	run.To = toTS
	run.Rows = int(rows)
	run.NumFeatures = int(nFeatures)
	run.TrainRows = int(nTrain)
	run.ValRows = int(nVal)
	run.TestRows = int(nTest)
	run.Imbalanced = imbalanced != 0
	run.Balanced = balanced != 0
	run.PreparedAt = preparedAt
	return &run, nil
}

func (s *CHRunStore) Close() error {
	return nil // Managed by pkg
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
