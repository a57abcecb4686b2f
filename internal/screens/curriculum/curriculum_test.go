package curriculum

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/llm"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/store"
)

type memSnapshots struct {
	saved []store.SnapshotData
}

func (m *memSnapshots) Save(_ context.Context, snap *store.Snapshot) error {
	m.saved = append(m.saved, snap.Data)
	return nil
}
func (m *memSnapshots) Latest(context.Context, string) (*store.Snapshot, error) { return nil, nil }
func (m *memSnapshots) Prune(context.Context, string, int) error               { return nil }

func typeText(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}

// submit types a prompt, presses Enter and delivers the check result.
func submit(t *testing.T, s screen.Screen, prompt string) (screen.Screen, tea.Cmd) {
	t.Helper()
	s = typeText(s, prompt)
	s, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	msg, ok := cmd().(checkedMsg)
	if !ok {
		t.Fatal("expected a checkedMsg")
	}
	return s.Update(msg)
}

func TestListSelectsRecommended(t *testing.T) {
	p := &lessons.UserProgress{UserID: "alice", SkillLevel: 1, CompletedLessons: []string{"basics_001"}}
	s := New(Deps{Progress: p})
	if got := s.lessons[s.selected].ID; got != "specificity_001" {
		t.Fatalf("selected %s, want specificity_001", got)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("enter should push the exercise screen")
	}
	if ex := push.Screen.(*ExerciseScreen); ex.exercise.ID != "specificity_001_ex1" {
		t.Fatalf("opened %s", ex.exercise.ID)
	}
}

func TestExercisePassCompletesLesson(t *testing.T) {
	snaps := &memSnapshots{}
	p := &lessons.UserProgress{UserID: "alice", SkillLevel: 1, CompletedLessons: []string{"specificity_001"}}
	d := Deps{Catalog: lessons.MustDefault(), Progress: p, Snapshots: snaps, AutoAdvance: true}
	basics, _ := d.Catalog.Get("basics_001")

	var s screen.Screen = NewExercise(d, basics)
	s, cmd := submit(t, s, "Explain Python decorators with examples, then quiz me to check my understanding")

	ex := s.(*ExerciseScreen)
	if ex.result == nil || !ex.result.Passed {
		t.Fatalf("expected a pass, got %+v", ex.result)
	}
	if !p.Completed("basics_001") || p.SkillLevel != 2 || !ex.leveled {
		t.Fatalf("progress not advanced: %+v", p)
	}
	if p.TotalPrompts != 1 || p.GoodPrompts != 1 {
		t.Fatalf("prompt counts = %d/%d", p.GoodPrompts, p.TotalPrompts)
	}

	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if msg := cmd().(savedMsg); msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}
	if len(snaps.saved) != 1 || snaps.saved[0].SkillLevel != 2 {
		t.Fatalf("saved %+v", snaps.saved)
	}
}

func TestExerciseFailShowsHints(t *testing.T) {
	p := &lessons.UserProgress{UserID: "alice", SkillLevel: 1}
	d := Deps{Catalog: lessons.MustDefault(), Progress: p}
	basics, _ := d.Catalog.Get("basics_001")

	var s screen.Screen = NewExercise(d, basics)
	s, _ = submit(t, s, "Write my essay about climate change")

	ex := s.(*ExerciseScreen)
	if ex.result.Passed || ex.result.IntentMatch {
		t.Fatalf("expected an intent mismatch, got %+v", ex.result)
	}
	if p.Completed("basics_001") || p.TotalPrompts != 1 || p.GoodPrompts != 0 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if ex.waiting {
		t.Fatal("no tutor, so no tip should be pending")
	}
}

func TestExerciseFailFetchesTip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"diagnosis": "Asks for finished work.", "tip": "Ask for the steps.", "rewrite": "Walk me through structuring an essay"}`)})
	p := &lessons.UserProgress{UserID: "alice", SkillLevel: 1}
	d := Deps{
		Catalog:  lessons.MustDefault(),
		Progress: p,
		Tutor:    lessons.NewTutor(mock, lessons.DefaultConfig()),
	}
	basics, _ := d.Catalog.Get("basics_001")

	var s screen.Screen = NewExercise(d, basics)
	s, _ = submit(t, s, "Write my essay about climate change")
	ex := s.(*ExerciseScreen)
	if !ex.waiting {
		t.Fatal("expected a tip request")
	}

	deadline := time.Now().Add(5 * time.Second)
	for ex.waiting && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		s.Update(tipPollMsg{})
	}
	if ex.tip == nil || ex.tip.Tip != "Ask for the steps." {
		t.Fatalf("tip = %+v", ex.tip)
	}
}
