package app

import (
	"fmt"
	"strings"

	"github.com/kyaoi/mdslides/internal/config"
	"github.com/kyaoi/mdslides/internal/deck"
	"github.com/kyaoi/mdslides/internal/ui"
	"github.com/kyaoi/mdslides/pkg/logging"
)

// LoadInitialState loads the deck and resolves the presentation settings.
// Flags override the deck front matter, which overrides the config files.
func LoadInitialState(opts Options) (ui.State, error) {
	d, err := deck.LoadWith(opts.Target, deck.Options{Tag: opts.Tag, Include: opts.Include})
	if err != nil {
		return ui.State{}, err
	}

	theme := opts.Config.Display.Theme
	if d.Theme != "" {
		theme = d.Theme
	}
	if opts.Theme != "" {
		theme = opts.Theme
	}
	theme = strings.ToLower(strings.TrimSpace(theme))
	switch theme {
	case config.ThemeDark, config.ThemeLight:
	default:
		return ui.State{}, fmt.Errorf("unknown theme %q", theme)
	}

	ctrlCfg := opts.Config.Navigation.Controller()
	if err := ctrlCfg.Validate(); err != nil {
		return ui.State{}, fmt.Errorf("navigation config: %w", err)
	}

	logging.Info("app", "presenting %q: %d slides, theme %s", d.Title, d.Slides.Len(), theme)
	return ui.State{
		Deck:       d,
		Controller: ctrlCfg,
		DarkTheme:  theme == config.ThemeDark,
		AutoPlay:   opts.AutoPlay || d.AutoPlay || opts.Config.Display.AutoPlayEnabled(),
		Watch:      opts.Watch,
	}, nil
}
