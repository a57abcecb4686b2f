package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screens/ragechat"
	"github.com/abhisek/promptcoach/internal/screens/scorer"
	"github.com/abhisek/promptcoach/internal/store"
)

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestMenuWithoutStore(t *testing.T) {
	h := New(Deps{UserID: "alice"})
	disabled := h.menu.DisabledSet()
	if !disabled[3] || !disabled[4] {
		t.Fatalf("leaderboard and history should be disabled without a store: %v", disabled)
	}

	// SCORE, LESSONS, RAGE CHAT, then down skips straight to QUIT.
	h.Update(down)
	h.Update(down)
	h.Update(down)
	if h.menu.Items[h.menu.Selected].Label != "QUIT" {
		t.Errorf("selected %q, want QUIT", h.menu.Items[h.menu.Selected].Label)
	}
}

func TestMenuPushesScreens(t *testing.T) {
	h := New(Deps{UserID: "alice"})

	_, cmd := h.Update(enter)
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*scorer.ScorerScreen); !ok {
		t.Errorf("pushed %T, want scorer", push.Screen)
	}

	h.Update(down)
	h.Update(down)
	_, cmd = h.Update(enter)
	push = cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*ragechat.ChatScreen); !ok {
		t.Errorf("pushed %T, want rage chat", push.Screen)
	}
}

func TestStatsLoad(t *testing.T) {
	st, err := store.Open("file:home_stats?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	for _, total := range []float64{80, 30} {
		err := st.EvaluationRepo().AppendEvaluation(ctx, store.EvaluationData{
			UserID: "alice", Prompt: "p", Intent: "learning", Total: total, Passing: total >= 60,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	h := New(Deps{UserID: "alice", Evals: st.EvaluationRepo(), Results: st.ResultRepo()})
	h.Update(h.Init()())
	if h.stats.Prompts != 2 || h.stats.Passing != 1 || h.stats.RageQuits != 0 {
		t.Fatalf("stats = %+v", h.stats)
	}
	if pickMascot(h.stats) != MascotIdle {
		t.Errorf("mascot = %v, want idle", pickMascot(h.stats))
	}
	if h.View(120, 40) == "" {
		t.Error("expected non-empty view")
	}
}
