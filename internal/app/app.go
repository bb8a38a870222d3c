package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdslides/internal/config"
	"github.com/kyaoi/mdslides/internal/ui"
	"github.com/kyaoi/mdslides/pkg/logging"
)

// Options selects the deck and presentation settings.
type Options struct {
	// Target is a Markdown file or directory; empty presents the built-in
	// deck.
	Target  string
	Tag     string
	Include []string
	Config  config.Config
	// Theme and AutoPlay come from command-line flags and win over both the
	// deck front matter and the configuration files.
	Theme    string
	AutoPlay bool
	Watch    bool
}

// Run executes the Bubble Tea program for the slide presenter.
func Run(opts Options) error {
	state, err := LoadInitialState(opts)
	if err != nil {
		return err
	}
	model, err := ui.NewModel(state)
	if err != nil {
		return err
	}
	defer model.Close()
	return runProgram(model)
}

func runProgram(model *ui.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if err != nil {
		logging.Error("app", err, "presenter exited")
	}
	return err
}
