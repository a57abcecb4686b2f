// Package ragechat is the TUI for the deliberately unhelpful chat.
package ragechat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/screens/rageresult"
	"github.com/abhisek/promptcoach/internal/store"
	"github.com/abhisek/promptcoach/internal/ui/components"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// savedMsg reports the result of persisting a rage-quit.
type savedMsg struct {
	result *rage.Result
	err    error
}

type line struct {
	user bool
	text string
}

// ChatScreen runs one rage session.
type ChatScreen struct {
	mgr      *rage.Manager
	results  store.ResultRepo
	input    components.PromptInput
	lines    []line
	errMsg   string
	quitting bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New starts a session for userID. A nil results repo skips persistence.
func New(userID string, factory func() *rage.Manager, results store.ResultRepo) *ChatScreen {
	if factory == nil {
		factory = rage.NewManager
	}
	mgr := factory()
	mgr.Start(userID)
	return &ChatScreen{
		mgr:     mgr,
		results: results,
		input:   components.NewPromptInput("Ask the assistant anything...", 60),
		lines:   []line{{text: "Hi! I'm your extremely helpful assistant. What can I do for you today?"}},
	}
}

func (s *ChatScreen) Init() tea.Cmd { return s.input.Init() }

func (s *ChatScreen) Title() string { return "Rage Chat" }

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Send"}}
	if s.mgr.Session().AttemptCount() > 0 {
		desc := "Give up"
		if s.mgr.ShouldOfferRageQuit() {
			desc = "RAGE QUIT"
		}
		hints = append(hints, layout.KeyHint{Key: "Ctrl+Q", Description: desc})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		note := ""
		if msg.err != nil {
			note = "Result not saved: " + msg.err.Error()
		}
		next := rageresult.New(msg.result, note)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if s.quitting {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s.send()
		case "ctrl+q":
			return s.rageQuit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() (screen.Screen, tea.Cmd) {
	prompt := s.input.Take()
	if prompt == "" {
		return s, nil
	}
	reply, _, _, err := s.mgr.Process(prompt)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.lines = append(s.lines, line{user: true, text: prompt}, line{text: reply})
	return s, nil
}

func (s *ChatScreen) rageQuit() (screen.Screen, tea.Cmd) {
	res, err := s.mgr.RageQuit()
	if errors.Is(err, rage.ErrNoAttempts) {
		s.errMsg = "Say something first. You can't quit what you never started."
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.quitting = true
	repo := s.results
	return s, func() tea.Msg {
		if repo == nil {
			return savedMsg{result: res}
		}
		return savedMsg{result: res, err: rage.Save(context.Background(), repo, res)}
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 4)
	meter := s.renderMeter(cw)
	input := s.input.View()

	var extra []string
	if s.mgr.ShouldOfferRageQuit() {
		extra = append(extra, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("You seem upset. Press Ctrl+Q to rage quit and see your score."))
	}
	if s.errMsg != "" {
		extra = append(extra, lipgloss.NewStyle().Foreground(theme.Accent).Render(s.errMsg))
	}

	fixed := lipgloss.Height(meter) + lipgloss.Height(input) + len(extra) + 3
	chat := s.renderChat(cw, max(height-fixed, 3))

	parts := append([]string{meter, "", chat, "", input}, extra...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(parts, "\n")))
}

func (s *ChatScreen) renderMeter(cw int) string {
	sum := s.mgr.Summary()
	state := sum.CurrentState
	style := theme.Meter[max(state.Intensity(), 0)]

	bar := components.NewProgressBar("Frustration", state.Progress(), cw)
	bar.Fill = lipgloss.NewStyle().Background(style.GetForeground())

	head := style.Render(strings.ToUpper(state.Title())) +
		theme.Hint.Render(fmt.Sprintf("   attempt %d   %s", sum.AttemptCount, sum.DurationDisplay))
	return head + "\n" + bar.View() + "\n" + theme.Hint.Render(state.Description())
}

// renderChat shows the newest messages that fit in rows terminal lines.
// A message too tall for the space left is cut from the top.
func (s *ChatScreen) renderChat(cw, rows int) string {
	var rendered []string
	used := 0
	for i := len(s.lines) - 1; i >= 0 && used < rows; i-- {
		l := s.lines[i]
		var text string
		if l.user {
			text = theme.UserLine.Render(layout.Wrap("you: "+l.text, cw))
		} else {
			text = theme.BotLine.Render(layout.Wrap("bot: "+l.text, cw))
		}
		if h := lipgloss.Height(text); used+h > rows {
			wrapped := strings.Split(text, "\n")
			text = strings.Join(wrapped[h-(rows-used):], "\n")
		}
		used += lipgloss.Height(text)
		rendered = append([]string{text}, rendered...)
	}
	return strings.Join(rendered, "\n")
}
