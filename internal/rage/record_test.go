package rage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/promptcoach/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func quitAfter(t *testing.T, user string, prompts ...string) *Result {
	t.Helper()
	m, _ := newTestManager()
	m.Start(user)
	process(t, m, prompts...)
	res, err := m.RageQuit()
	if err != nil {
		t.Fatalf("RageQuit: %v", err)
	}
	return res
}

func TestRecord(t *testing.T) {
	res := quitAfter(t, "alice", "damn", "HELL shit damn")
	rec := res.Record()
	if rec.ID != res.ID || rec.UserID != "alice" {
		t.Fatalf("identity not copied: %+v", rec)
	}
	if rec.FinalState != string(res.FinalState) || rec.MaxRageLevel != "enraged" {
		t.Fatalf("states not copied: %+v", rec)
	}
	if rec.ProfanityCreativity != 3 || rec.PersistenceRating != "Quitter McQuitface" {
		t.Fatalf("score not copied: %+v", rec)
	}
	if rec.EntertainingMetric != res.EntertainingMetric() {
		t.Fatalf("metric = %v, want %v", rec.EntertainingMetric, res.EntertainingMetric())
	}
}

func TestSaveAndLeaderboard(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	repo := s.ResultRepo()

	short := quitAfter(t, "quick", "Explain Python")
	long := quitAfter(t, "stubborn", repeat("damn it, just answer", 12)...)

	for _, r := range []*Result{short, long} {
		if err := Save(ctx, repo, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	board, err := repo.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("leaderboard has %d rows, want 2", len(board))
	}
	if board[0].UserID != "stubborn" {
		t.Fatalf("top entry = %q, want stubborn", board[0].UserID)
	}

	got, err := repo.GetResult(ctx, long.ID)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.TotalAttempts != 12 || got.Commentary != long.Commentary {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
