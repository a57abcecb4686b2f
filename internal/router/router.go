// Package router keeps the TUI's stack of screens. Screens navigate by
// returning one of the *Msg commands below; the router never decides on
// its own where to go.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcoach/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg goes back one screen. Ignored at the root.
	PopScreenMsg struct{}

	// ReplaceScreenMsg swaps the top screen, e.g. chat to result.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	// PopToRootMsg goes back to the first screen.
	PopToRootMsg struct{}
)

// Router is a stack of screens; the last one receives input.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Depth() int { return len(r.stack) }

// Active is the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop drops the top screen. The root is never popped.
func (r *Router) Pop() tea.Cmd { return r.truncate(len(r.stack) - 1) }

// PopToRoot drops everything above the root.
func (r *Router) PopToRoot() tea.Cmd { return r.truncate(1) }

// truncate shrinks the stack to depth screens and resumes the new top.
// Depth below one, or no change, is a no-op.
func (r *Router) truncate(depth int) tea.Cmd {
	if depth < 1 || depth >= len(r.stack) {
		return nil
	}
	clear(r.stack[depth:])
	r.stack = r.stack[:depth]
	if rs, ok := r.Active().(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
