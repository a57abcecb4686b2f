package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one menu entry. Disabled entries are drawn dimmed and are
// never selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the selection of a vertical menu; screens render it with
// ListColumn or ButtonColumn.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(+1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Labels() []string {
	out := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		out = append(out, it.Label)
	}
	return out
}

// DisabledSet maps item index to true for disabled items.
func (m Menu) DisabledSet() map[int]bool {
	set := map[int]bool{}
	for i, it := range m.Items {
		if it.Disabled {
			set[i] = true
		}
	}
	return set
}

// step moves to the nearest enabled item in direction dir (+1 or -1).
// The selection stays put at either end.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// jump selects the first enabled item walking from just past start.
func (m *Menu) jump(start, dir int) {
	prev := m.Selected
	m.Selected = start
	m.step(dir)
	if m.Selected == start {
		m.Selected = prev
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(+1)
	case "home", "g":
		m.jump(-1, +1)
	case "end", "G":
		m.jump(len(m.Items), -1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}
