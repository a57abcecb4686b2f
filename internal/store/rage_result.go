package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// resultRepo implements ResultRepo.
type resultRepo struct {
	s *Store
}

func (r *resultRepo) SaveResult(ctx context.Context, data RageResultData) error {
	if data.ID == "" {
		return errors.New("save rage result: empty id")
	}
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.s.exec(ctx, `INSERT INTO rage_results
		(id, sequence, created_at, user_id, total_attempts, time_elapsed_seconds, max_rage_level,
		 final_state, politeness_decay, profanity_creativity, caps_escalation, plea_count,
		 philosophical_score, entertaining_metric, persistence_rating, legendary, achievement, commentary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.ID, seqNum, time.Now().UnixMilli(), data.UserID, data.TotalAttempts,
		data.TimeElapsedSeconds, data.MaxRageLevel, data.FinalState, data.PolitenessDecay,
		data.ProfanityCreativity, data.CapsEscalation, data.PleaCount, data.PhilosophicalScore,
		data.EntertainingMetric, data.PersistenceRating, boolToInt(data.Legendary),
		data.Achievement, data.Commentary,
	)
	if err != nil {
		return fmt.Errorf("save rage result: %w", err)
	}
	return nil
}

const rageResultColumns = `id, sequence, created_at, user_id, total_attempts, time_elapsed_seconds,
	max_rage_level, final_state, politeness_decay, profanity_creativity, caps_escalation,
	plea_count, philosophical_score, entertaining_metric, persistence_rating, legendary,
	achievement, commentary`

func (r *resultRepo) GetResult(ctx context.Context, id string) (*RageResult, error) {
	row := r.s.queryRow(ctx, "SELECT "+rageResultColumns+" FROM rage_results WHERE id = ?", id)
	res, err := scanRageResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

func (r *resultRepo) Leaderboard(ctx context.Context, limit int) ([]RageResult, error) {
	q := "SELECT " + rageResultColumns + " FROM rage_results ORDER BY entertaining_metric DESC, total_attempts DESC, sequence ASC" + limitClause(limit)
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []RageResult
	for rows.Next() {
		res, err := scanRageResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *resultRepo) Stats(ctx context.Context) (*RageStats, error) {
	stats := &RageStats{ByFinalState: make(map[string]int)}
	err := r.s.queryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total_attempts), 0),
		COALESCE(SUM(legendary), 0), COALESCE(AVG(entertaining_metric), 0) FROM rage_results`).
		Scan(&stats.Sessions, &stats.TotalAttempts, &stats.Legendary, &stats.AvgEntertained)
	if err != nil {
		return nil, fmt.Errorf("query rage totals: %w", err)
	}

	rows, err := r.s.query(ctx, `SELECT final_state, COUNT(*) FROM rage_results GROUP BY final_state`)
	if err != nil {
		return nil, fmt.Errorf("query rage states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("scan rage states: %w", err)
		}
		stats.ByFinalState[state] = n
	}
	return stats, rows.Err()
}

func scanRageResult(row rowScanner) (*RageResult, error) {
	var res RageResult
	var created int64
	var legendary int
	err := row.Scan(&res.ID, &res.Sequence, &created, &res.UserID, &res.TotalAttempts,
		&res.TimeElapsedSeconds, &res.MaxRageLevel, &res.FinalState, &res.PolitenessDecay,
		&res.ProfanityCreativity, &res.CapsEscalation, &res.PleaCount, &res.PhilosophicalScore,
		&res.EntertainingMetric, &res.PersistenceRating, &legendary, &res.Achievement,
		&res.Commentary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan rage result: %w", err)
	}
	res.Timestamp = time.UnixMilli(created)
	res.Legendary = legendary != 0
	return &res, nil
}
