package rage

import (
	"context"
	"fmt"

	"github.com/abhisek/promptcoach/internal/store"
)

// Record converts a result into its persisted leaderboard row.
func (r *Result) Record() store.RageResultData {
	return store.RageResultData{
		ID:                  r.ID,
		UserID:              r.UserID,
		TotalAttempts:       r.Score.TotalAttempts,
		TimeElapsedSeconds:  int(r.Score.TimeElapsedSeconds),
		MaxRageLevel:        string(r.Score.MaxRageLevel),
		FinalState:          string(r.FinalState),
		PolitenessDecay:     r.Score.PolitenessDecay,
		ProfanityCreativity: r.Score.ProfanityCreativity,
		CapsEscalation:      r.Score.CapsEscalation,
		PleaCount:           r.Score.PleaCount,
		PhilosophicalScore:  r.Score.PhilosophicalScore,
		EntertainingMetric:  r.EntertainingMetric(),
		PersistenceRating:   r.Score.PersistenceRating(),
		Legendary:           r.Score.Legendary(),
		Achievement:         r.Achievement,
		Commentary:          r.Commentary,
	}
}

// Save persists the result to repo.
func Save(ctx context.Context, repo store.ResultRepo, r *Result) error {
	if err := repo.SaveResult(ctx, r.Record()); err != nil {
		return fmt.Errorf("save rage result %s: %w", r.ID, err)
	}
	return nil
}
