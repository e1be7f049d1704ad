// Package tui provides an interactive result browser built on Bubble Tea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patseek/patseek/internal/search"
)

// AppState represents the current state of the TUI
type AppState int

const (
	StateBrowsing AppState = iota
	StateDetail
)

// Model holds the browser state over one query's results.
type Model struct {
	state   AppState
	query   string
	results []search.Result
	cursor  int
	width   int
	height  int
}

// NewModel creates a browser over already-ranked results.
func NewModel(query string, results []search.Result) Model {
	return Model{
		state:   StateBrowsing,
		query:   query,
		results: results,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Run launches the browser and blocks until the user quits.
func Run(query string, results []search.Result) error {
	p := tea.NewProgram(NewModel(query, results))
	_, err := p.Run()
	return err
}
