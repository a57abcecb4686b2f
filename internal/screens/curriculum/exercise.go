package curriculum

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/lessons"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/ui/components"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const tipPollInterval = 300 * time.Millisecond

type checkedMsg struct {
	res  lessons.ExerciseResult
	text string
	err  error
}

type savedMsg struct {
	err error
}

type tipPollMsg struct{}

// ExerciseScreen teaches one lesson and grades attempts at its exercise.
type ExerciseScreen struct {
	deps     Deps
	lesson   lessons.Lesson
	exercise lessons.Exercise
	input    components.PromptInput
	prompt   string
	result   *lessons.ExerciseResult
	feedback string
	tip      *lessons.Tip
	waiting  bool
	busy     bool
	leveled  bool
	warning  string
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// NewExercise opens a lesson on its first exercise.
func NewExercise(d Deps, l lessons.Lesson) *ExerciseScreen {
	s := &ExerciseScreen{
		deps:   d.withDefaults(),
		lesson: l,
		input:  components.NewPromptInput("Write your prompt for this exercise...", 60),
	}
	if len(l.Exercises) > 0 {
		s.exercise = l.Exercises[0]
	}
	return s
}

func (s *ExerciseScreen) Init() tea.Cmd { return s.input.Init() }

func (s *ExerciseScreen) Title() string { return s.lesson.Title }

func (s *ExerciseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Lessons"},
	}
}

func (s *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		return s.handleChecked(msg)

	case savedMsg:
		if msg.err != nil {
			s.warning = "progress not saved: " + msg.err.Error()
		}
		return s, nil

	case tipPollMsg:
		return s.pollTip()

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			if s.busy || s.exercise.ID == "" {
				return s, nil
			}
			prompt := s.input.Take()
			if prompt == "" {
				return s, nil
			}
			s.prompt, s.busy, s.tip, s.warning = prompt, true, nil, ""
			return s, s.check(prompt)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ExerciseScreen) check(prompt string) tea.Cmd {
	svc, user := s.deps.Coach, s.deps.Progress.UserID
	lessonID, ex := s.lesson.ID, s.exercise
	return func() tea.Msg {
		res, err := svc.Evaluate(context.Background(), coach.Request{
			UserID:     user,
			Prompt:     prompt,
			LessonID:   lessonID,
			ExerciseID: ex.ID,
		})
		return checkedMsg{res: lessons.Judge(ex, res.Analysis.Score), text: res.Feedback, err: err}
	}
}

func (s *ExerciseScreen) handleChecked(msg checkedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.result = &msg.res
	s.feedback = msg.text
	if msg.err != nil {
		s.warning = "not saved to history: " + msg.err.Error()
	}

	p := s.deps.Progress
	p.RecordPrompt(msg.res.Score)
	if msg.res.Passed {
		p.Complete(s.lesson.ID)
		if s.deps.AutoAdvance {
			s.leveled = s.deps.Catalog.LevelUp(p)
		}
	}

	save := s.save()
	if !msg.res.Passed && s.deps.Tutor != nil {
		s.deps.Tutor.RequestTip(context.Background(), lessons.TipInput{
			Lesson:   s.lesson,
			Exercise: s.exercise,
			Prompt:   s.prompt,
			Result:   msg.res,
		})
		s.waiting = true
		return s, tea.Batch(save, pollTip())
	}
	return s, save
}

// save persists a copy of the progress so the command never races the UI.
func (s *ExerciseScreen) save() tea.Cmd {
	repo := s.deps.Snapshots
	if repo == nil {
		return nil
	}
	cp := *s.deps.Progress
	cp.CompletedLessons = slices.Clone(cp.CompletedLessons)
	return func() tea.Msg {
		return savedMsg{err: lessons.SaveProgress(context.Background(), repo, &cp)}
	}
}

func pollTip() tea.Cmd {
	return tea.Tick(tipPollInterval, func(time.Time) tea.Msg { return tipPollMsg{} })
}

func (s *ExerciseScreen) pollTip() (screen.Screen, tea.Cmd) {
	if !s.waiting {
		return s, nil
	}
	if tip, ok := s.deps.Tutor.ConsumeTip(); ok {
		s.tip, s.waiting = tip, false
		return s, nil
	}
	if !s.deps.Tutor.Busy() {
		// Generation failed; the hints are shown instead.
		s.waiting = false
		return s, nil
	}
	return s, pollTip()
}

func (s *ExerciseScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 4)
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(head.Render(s.lesson.Title) + "\n")
	b.WriteString(layout.Wrap(s.lesson.Content, cw) + "\n\n")
	for _, o := range s.lesson.Objectives {
		b.WriteString(theme.Hint.Render("  • "+o) + "\n")
	}

	if s.exercise.ID == "" {
		return b.String()
	}

	b.WriteString("\n" + head.Render("Exercise") + "\n")
	b.WriteString(layout.Wrap(s.exercise.Prompt, cw) + "\n\n")
	b.WriteString(s.input.View() + "\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("Checking..."))
	case s.result != nil:
		b.WriteString(s.renderResult(cw))
	}

	if s.warning != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.warning))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *ExerciseScreen) renderResult(cw int) string {
	r := s.result
	var b strings.Builder
	if r.Passed {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Passed with %.1f. Lesson complete!", r.Score.Total)))
		if s.leveled {
			b.WriteString("\n" + theme.Correct.Render(fmt.Sprintf("You reached skill level %d.", s.deps.Progress.SkillLevel)))
		}
		return b.String()
	}

	msg := fmt.Sprintf("Not yet: %.1f", r.Score.Total)
	if !r.IntentMatch {
		msg = fmt.Sprintf("Not yet: %.1f. Aim for a %s prompt, this one reads as %s",
			r.Score.Total, s.exercise.ExpectedIntent.Label(), r.Score.Intent.Label())
	}
	b.WriteString(theme.Incorrect.Render(msg) + "\n\n")

	switch {
	case s.tip != nil:
		b.WriteString(layout.Wrap(s.tip.Diagnosis, cw) + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(layout.Wrap("Tip: "+s.tip.Tip, cw)) + "\n")
		b.WriteString(theme.Hint.Render(layout.Wrap("Try: "+s.tip.Rewrite, cw)))
	case s.waiting:
		b.WriteString(theme.Hint.Render("Asking your coach for a tip..."))
	default:
		for _, h := range s.exercise.Hints {
			b.WriteString(theme.Hint.Render("  • "+h) + "\n")
		}
		if s.exercise.GoodExample != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
				Render(layout.Wrap("Example: "+s.exercise.GoodExample, cw)))
		}
	}
	return b.String()
}
