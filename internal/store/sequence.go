package store

import (
	"context"
	"fmt"
	"sync"
)

// sequenceCounter hands out one increasing sequence shared by every
// table, so evaluations, rage results, snapshots and LLM events can be
// ordered against each other. The UPDATE ... RETURNING is atomic in both
// SQLite and Postgres; the mutex only avoids busy retries within one
// process.
type sequenceCounter struct {
	mu sync.Mutex
	s  *Store
}

func newSequenceCounter(ctx context.Context, s *Store) (*sequenceCounter, error) {
	_, err := s.exec(ctx, `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = s.exec(ctx, `INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{s: s}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (seq int64, err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	row := sc.s.queryRow(ctx, `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`)
	if err = row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
