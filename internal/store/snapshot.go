package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// snapshotRepo implements SnapshotRepo with the data column holding JSON.
type snapshotRepo struct {
	s *Store
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 {
		seq, err := r.s.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	_, err = r.s.exec(ctx, `INSERT INTO progress_snapshots (sequence, created_at, user_id, data)
		VALUES (?, ?, ?, ?)`,
		snap.Sequence, snap.Timestamp.UnixMilli(), snap.UserID, string(data))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	var snap Snapshot
	var created int64
	var raw string
	err := r.s.queryRow(ctx, `SELECT id, user_id, sequence, created_at, data FROM progress_snapshots
		WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID).
		Scan(&snap.ID, &snap.UserID, &snap.Sequence, &created, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	snap.Timestamp = time.UnixMilli(created)
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, userID string, keep int) error {
	// Find the ID threshold: the Nth most recent snapshot.
	var threshold int
	err := r.s.queryRow(ctx, `SELECT id FROM progress_snapshots WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1 OFFSET ?`, userID, keep).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	_, err = r.s.exec(ctx, `DELETE FROM progress_snapshots WHERE user_id = ? AND id <= ?`, userID, threshold)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
