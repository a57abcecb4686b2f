package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", s.Driver())
	}
}

func TestDriverForDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want Driver
	}{
		{"postgres://localhost/promptcoach", DriverPostgres},
		{"postgresql://u:p@db:5432/x?sslmode=disable", DriverPostgres},
		{"/tmp/promptcoach.db", DriverSQLite},
		{"file::memory:?cache=shared", DriverSQLite},
	}
	for _, tt := range tests {
		if got := DriverForDSN(tt.dsn); got != tt.want {
			t.Errorf("DriverForDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	got := pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?")
	if got != "SELECT * FROM t WHERE a = $1 AND b = $2" {
		t.Errorf("rebind = %q", got)
	}

	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range append([]string{"global_sequence"}, dataTables...) {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceCounterSurvivesReseed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.seq.Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	sc, err := newSequenceCounter(ctx, s)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	seq, err := sc.Next(ctx)
	if err != nil {
		t.Fatalf("next after reseed: %v", err)
	}
	if seq != 2 {
		t.Errorf("seq after reseed = %d, want 2", seq)
	}
}

func TestLLMEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "intent", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true, RequestBody: "[user]\nhi"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "demo", InputTokens: 20, OutputTokens: 15, LatencyMs: 300, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "demo", LatencyMs: 50, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Provider != "anthropic" || got[0].Success {
		t.Errorf("newest event = %+v, want failed anthropic call", got[0].LLMRequestEventData)
	}

	first, err := repo.GetLLMEvent(ctx, got[1].ID-1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "[user]\nhi" {
		t.Fatalf("first event = %+v", first)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %v, %v; want nil, nil", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "demo" || byPurpose[0].Calls != 2 {
		t.Errorf("usage by purpose = %+v", byPurpose)
	}
	if byPurpose[0].InputTokens != 20 || byPurpose[0].AvgLatencyMs != 175 {
		t.Errorf("demo usage = %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4o-mini" {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestQueryOptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "test"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 2, Before: 5})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Sequence != 4 || got[1].Sequence != 3 {
		t.Errorf("sequences = %d,%d, want 4,3", got[0].Sequence, got[1].Sequence)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future events = %d, want 0", len(future))
	}
}

func TestEvaluationsAndStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EvaluationRepo()
	ctx := context.Background()

	data := []EvaluationData{
		{UserID: "ana", Prompt: "Write my essay", Intent: "do_it_for_me", Total: 42},
		{UserID: "ana", Prompt: "Explain recursion, then quiz me", Intent: "help_me_learn", Total: 70, Passing: true},
		{UserID: "bo", Prompt: "what if", Intent: "reflection", Total: 55},
	}
	for _, d := range data {
		if err := repo.AppendEvaluation(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryEvaluations(ctx, "ana", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Passing || got[0].Intent != "help_me_learn" {
		t.Errorf("newest = %+v", got[0].EvaluationData)
	}

	stats, err := repo.EvaluationStats(ctx, "ana")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Passing != 1 || stats.AvgScore != 56 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByIntent["do_it_for_me"] != 1 {
		t.Errorf("by intent = %v", stats.ByIntent)
	}

	all, err := repo.EvaluationStats(ctx, "")
	if err != nil {
		t.Fatalf("stats all: %v", err)
	}
	if all.Total != 3 {
		t.Errorf("total = %d, want 3", all.Total)
	}
}

func TestLeaderboardOrdersByEntertainingMetric(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	results := []RageResultData{
		{ID: "a", UserID: "ana", TotalAttempts: 6, EntertainingMetric: 28, FinalState: "angry", PersistenceRating: "Easily Discouraged"},
		{ID: "b", UserID: "bo", TotalAttempts: 55, EntertainingMetric: 100, FinalState: "enraged", Legendary: true, PersistenceRating: "Rage Connoisseur"},
		{ID: "c", UserID: "cy", TotalAttempts: 16, EntertainingMetric: 58, FinalState: "enraged", PersistenceRating: "Stubborn Amateur"},
	}
	for _, r := range results {
		if err := repo.SaveResult(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	board, err := repo.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("len = %d, want 2", len(board))
	}
	if board[0].ID != "b" || board[1].ID != "c" {
		t.Errorf("order = %s,%s, want b,c", board[0].ID, board[1].ID)
	}
	if !board[0].Legendary {
		t.Error("expected legendary flag to round-trip")
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Sessions != 3 || stats.TotalAttempts != 77 || stats.Legendary != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByFinalState["enraged"] != 2 {
		t.Errorf("by final state = %v", stats.ByFinalState)
	}

	if _, err := repo.GetResult(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetResult(missing) error = %v, want ErrNotFound", err)
	}
	got, err := repo.GetResult(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "ana" {
		t.Errorf("user = %q, want ana", got.UserID)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "ana")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		UserID:    "ana",
		Sequence:  42,
		Timestamp: now,
		Data:      SnapshotData{Version: 1, SkillLevel: 2, CompletedLessons: []string{"basics_001"}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, "ana")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.SkillLevel != 2 || len(snap.Data.CompletedLessons) != 1 {
		t.Errorf("data = %+v", snap.Data)
	}

	other, err := repo.Latest(ctx, "bo")
	if err != nil || other != nil {
		t.Errorf("other user's snapshot = %v, %v; want nil, nil", other, err)
	}
}

func TestSnapshotSaveAssignsSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap := &Snapshot{UserID: "ana", Data: SnapshotData{Version: 1}}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if snap.Sequence == 0 || snap.Timestamp.IsZero() {
		t.Errorf("snapshot = %+v, want sequence and timestamp filled", snap)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			UserID:    "ana",
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, "ana", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM progress_snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx, "ana")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, "ana", 10); err != nil {
		t.Fatalf("prune no-op: %v", err)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EvaluationRepo().AppendEvaluation(ctx, EvaluationData{UserID: "ana", Prompt: "x", Intent: "unknown"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	stats, err := s.EvaluationRepo().EvaluationStats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("total after reset = %d, want 0", stats.Total)
	}
}
