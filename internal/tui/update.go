package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == StateDetail {
				m.state = StateBrowsing
				return m, nil
			}
			return m, tea.Quit
		}

		switch m.state {
		case StateBrowsing:
			switch msg.String() {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.results)-1 {
					m.cursor++
				}
			case "enter":
				if len(m.results) > 0 {
					m.state = StateDetail
				}
			case "esc":
				return m, tea.Quit
			}

		case StateDetail:
			switch msg.String() {
			case "esc", "enter":
				m.state = StateBrowsing
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}
