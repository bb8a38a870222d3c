package config

import (
	"time"

	"github.com/kyaoi/mdslides/internal/slides"
)

// Theme names accepted by the presenter.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the top-level configuration structure for mdslides.
type Config struct {
	Navigation NavigationConfig `yaml:"navigation"`
	Display    DisplayConfig    `yaml:"display"`
	Log        LogConfig        `yaml:"log"`
}

// NavigationConfig tunes the slide controller.
type NavigationConfig struct {
	TransitionWindow time.Duration `yaml:"transition_window,omitempty"`
	WheelCooldown    time.Duration `yaml:"wheel_cooldown,omitempty"`
	AutoPlayInterval time.Duration `yaml:"autoplay_interval,omitempty"`
	HintDuration     time.Duration `yaml:"hint_duration,omitempty"`
	// MinSwipeDistance is measured in terminal rows. Zero accepts any
	// vertical drag, so nil marks it unset.
	MinSwipeDistance *float64      `yaml:"min_swipe_distance,omitempty"`
	MaxSwipeDuration time.Duration `yaml:"max_swipe_duration,omitempty"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	Theme    string `yaml:"theme,omitempty"`
	AutoPlay *bool  `yaml:"autoplay,omitempty"`
}

// LogConfig selects where diagnostic logs go. An empty File discards them.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Controller converts the navigation settings to a controller config.
func (n NavigationConfig) Controller() slides.Config {
	return slides.Config{
		TransitionWindow: n.TransitionWindow,
		WheelCooldown:    n.WheelCooldown,
		AutoPlayInterval: n.AutoPlayInterval,
		HintDuration:     n.HintDuration,
		MinSwipeDistance: n.SwipeDistance(),
		MaxSwipeDuration: n.MaxSwipeDuration,
	}
}

// SwipeDistance returns the configured swipe threshold in rows.
func (n NavigationConfig) SwipeDistance() float64 {
	if n.MinSwipeDistance == nil {
		return defaultMinSwipeRows
	}
	return *n.MinSwipeDistance
}

// AutoPlayEnabled reports whether auto-play should start with the deck.
func (d DisplayConfig) AutoPlayEnabled() bool {
	return d.AutoPlay != nil && *d.AutoPlay
}
