package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screens/home"
	"github.com/abhisek/promptcoach/internal/screens/welcome"
)

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{Deps: home.Deps{UserID: "alice"}})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}

	m = newAppModel(Options{SkipWelcome: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want home", m.router.Active())
	}
}

func TestEscPopsAboveRoot(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	esc := tea.KeyPressMsg{Code: tea.KeyEscape}

	if _, cmd := m.Update(esc); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc at the root should not pop")
		}
	}

	m.router.Push(home.New(home.Deps{}))
	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestHeaderInfo(t *testing.T) {
	p, err := lessons.NewProgress("alice", 3)
	if err != nil {
		t.Fatal(err)
	}
	p.Complete("basics")

	m := newAppModel(Options{SkipWelcome: true, Deps: home.Deps{UserID: "alice", Progress: p}})
	info := m.headerInfo()
	if info.UserID != "alice" || info.SkillLevel != 3 || info.Completed != 1 {
		t.Errorf("header info = %+v", info)
	}
}

func TestViewRenders(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true, Deps: home.Deps{UserID: "alice"}})
	for _, size := range []tea.WindowSizeMsg{{Width: 40, Height: 10}, {Width: 120, Height: 40}} {
		next, _ := m.Update(size)
		m = next.(AppModel)
		_ = m.View()
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}
