package store

import (
	"context"
	"fmt"
	"time"
)

// evaluationRepo implements EvaluationRepo.
type evaluationRepo struct {
	s *Store
}

func (r *evaluationRepo) AppendEvaluation(ctx context.Context, data EvaluationData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.s.exec(ctx, `INSERT INTO prompt_evaluations
		(sequence, created_at, user_id, prompt, intent, total, learning, specificity,
		 engagement, passing, lesson_id, exercise_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.UserID, data.Prompt, data.Intent,
		data.Total, data.Learning, data.Specificity, data.Engagement,
		boolToInt(data.Passing), data.LessonID, data.ExerciseID,
	)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepo) QueryEvaluations(ctx context.Context, userID string, opts QueryOpts) ([]Evaluation, error) {
	var conds []string
	var args []any
	if userID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, userID)
	}
	where, args := filterClause(conds, args, opts)

	q := `SELECT id, sequence, created_at, user_id, prompt, intent, total, learning,
		specificity, engagement, passing, lesson_id, exercise_id
		FROM prompt_evaluations` + where + " ORDER BY sequence DESC" + limitClause(opts.Limit)

	rows, err := r.s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var e Evaluation
		var created int64
		var passing int
		if err := rows.Scan(&e.ID, &e.Sequence, &created, &e.UserID, &e.Prompt, &e.Intent,
			&e.Total, &e.Learning, &e.Specificity, &e.Engagement, &passing,
			&e.LessonID, &e.ExerciseID); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.Timestamp = time.UnixMilli(created)
		e.Passing = passing != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *evaluationRepo) EvaluationStats(ctx context.Context, userID string) (*EvaluationStats, error) {
	where := ""
	var args []any
	if userID != "" {
		where = " WHERE user_id = ?"
		args = append(args, userID)
	}

	stats := &EvaluationStats{ByIntent: make(map[string]int)}
	err := r.s.queryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(passing), 0), COALESCE(AVG(total), 0)
		FROM prompt_evaluations`+where, args...).Scan(&stats.Total, &stats.Passing, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("query evaluation totals: %w", err)
	}

	rows, err := r.s.query(ctx, `SELECT intent, COUNT(*) FROM prompt_evaluations`+where+` GROUP BY intent`, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluation intents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var intent string
		var n int
		if err := rows.Scan(&intent, &n); err != nil {
			return nil, fmt.Errorf("scan evaluation intents: %w", err)
		}
		stats.ByIntent[intent] = n
	}
	return stats, rows.Err()
}
