// Package curriculum lists the lessons and runs their exercises.
package curriculum

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/store"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// Deps are what the lesson screens need. Tutor and Snapshots may be nil.
type Deps struct {
	Catalog     *lessons.Catalog
	Progress    *lessons.UserProgress
	Coach       *coach.Service
	Tutor       *lessons.Tutor
	Snapshots   store.SnapshotRepo
	AutoAdvance bool
}

func (d Deps) withDefaults() Deps {
	if d.Catalog == nil {
		d.Catalog = lessons.MustDefault()
	}
	if d.Progress == nil {
		d.Progress, _ = lessons.NewProgress("", lessons.MinLevel)
	}
	if d.Coach == nil {
		d.Coach = coach.NewService(nil, "", nil)
	}
	return d
}

// ListScreen shows every lesson with the learner's completion marks.
type ListScreen struct {
	deps     Deps
	lessons  []lessons.Lesson
	selected int
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.Resumer = (*ListScreen)(nil)

// New creates the lesson list, selecting the recommended lesson.
func New(d Deps) *ListScreen {
	d = d.withDefaults()
	s := &ListScreen{deps: d, lessons: d.Catalog.All()}
	s.selectRecommended()
	return s
}

func (s *ListScreen) selectRecommended() {
	next, ok := s.deps.Catalog.Next(s.deps.Progress)
	if !ok {
		return
	}
	for i, l := range s.lessons {
		if l.ID == next.ID {
			s.selected = i
		}
	}
}

func (s *ListScreen) Init() tea.Cmd { return nil }

// Resume moves the cursor to the new recommendation after an exercise.
func (s *ListScreen) Resume() tea.Cmd {
	s.selectRecommended()
	return nil
}

func (s *ListScreen) Title() string { return "Lessons" }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.lessons)-1 {
			s.selected++
		}
	case "enter":
		if len(s.lessons) == 0 {
			return s, nil
		}
		ex := NewExercise(s.deps, s.lessons[s.selected])
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: ex} }
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	p := s.deps.Progress
	next, hasNext := s.deps.Catalog.Next(p)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint,
		fmt.Sprintf("Skill level %d   %d of %d lessons done   %.0f%% of prompts passing",
			p.SkillLevel, len(p.CompletedLessons), len(s.lessons), p.SuccessRate())))
	b.WriteString("\n\n")

	for i, l := range s.lessons {
		mark := "  "
		if p.Completed(l.ID) {
			mark = "✓ "
		}
		line := fmt.Sprintf("%s%-34s  level %d", mark, l.Title, l.Difficulty)
		if hasNext && l.ID == next.ID {
			line += "  ← next"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = theme.Selected
			line = "▸ " + line
		case p.Completed(l.ID):
			style = lipgloss.NewStyle().Foreground(theme.Success)
			line = "  " + line
		case l.Difficulty > p.SkillLevel+1:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
			line = "  " + line
		default:
			line = "  " + line
		}
		b.WriteString(layout.Centered(width, style, line))
		b.WriteString("\n")
	}

	if len(s.lessons) > 0 {
		l := s.lessons[s.selected]
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.Hint, l.Description))
	}
	return b.String()
}
