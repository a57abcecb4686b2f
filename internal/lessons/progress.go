package lessons

import (
	"context"
	"fmt"

	"github.com/abhisek/promptcoach/internal/store"
)

// snapshotVersion is bumped when SnapshotData changes shape.
const snapshotVersion = 1

// snapshotKeep is how many progress snapshots are retained per user.
const snapshotKeep = 20

// Snapshot converts progress into its persisted form.
func (p *UserProgress) Snapshot() store.SnapshotData {
	return store.SnapshotData{
		Version:          snapshotVersion,
		SkillLevel:       p.SkillLevel,
		CurrentLesson:    p.CurrentLesson,
		CompletedLessons: append([]string(nil), p.CompletedLessons...),
		TotalPrompts:     p.TotalPrompts,
		GoodPrompts:      p.GoodPrompts,
	}
}

// LoadProgress restores a user's latest progress, or starts them at
// skillLevel when nothing is stored.
func LoadProgress(ctx context.Context, repo store.SnapshotRepo, userID string, skillLevel int) (*UserProgress, error) {
	snap, err := repo.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if snap == nil {
		return NewProgress(userID, skillLevel)
	}
	p := &UserProgress{
		UserID:           userID,
		CurrentLesson:    snap.Data.CurrentLesson,
		CompletedLessons: snap.Data.CompletedLessons,
		SkillLevel:       snap.Data.SkillLevel,
		TotalPrompts:     snap.Data.TotalPrompts,
		GoodPrompts:      snap.Data.GoodPrompts,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stored progress for %s: %w", userID, err)
	}
	return p, nil
}

// SaveProgress appends a snapshot and prunes old ones.
func SaveProgress(ctx context.Context, repo store.SnapshotRepo, p *UserProgress) error {
	if err := repo.Save(ctx, &store.Snapshot{UserID: p.UserID, Data: p.Snapshot()}); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := repo.Prune(ctx, p.UserID, snapshotKeep); err != nil {
		return fmt.Errorf("prune progress: %w", err)
	}
	return nil
}
