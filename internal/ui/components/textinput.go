package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// MaxPromptLength bounds what a learner can type into one prompt.
const MaxPromptLength = 500

// PromptInput wraps bubbles/textinput for entering prompts.
type PromptInput struct {
	Model textinput.Model
}

// NewPromptInput creates a focused input with the given placeholder.
func NewPromptInput(placeholder string, width int) PromptInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = MaxPromptLength
	ti.Prompt = "> "
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()
	return PromptInput{Model: ti}
}

// Init returns the cursor blink command.
func (p PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the underlying input.
func (p PromptInput) Update(msg tea.Msg) (PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// View renders the input.
func (p PromptInput) View() string {
	return p.Model.View()
}

// Value returns the trimmed input.
func (p PromptInput) Value() string {
	return strings.TrimSpace(p.Model.Value())
}

// Take returns the trimmed input and clears it.
func (p *PromptInput) Take() string {
	v := p.Value()
	p.Model.Reset()
	return v
}

// SetWidth resizes the input.
func (p *PromptInput) SetWidth(w int) {
	if w > 0 {
		p.Model.SetWidth(w)
	}
}
