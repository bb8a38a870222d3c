package config

import "github.com/kyaoi/mdslides/internal/slides"

// defaultMinSwipeRows replaces the controller's pixel-sized swipe threshold
// with one that suits terminal rows.
const defaultMinSwipeRows = 3

// GetDefaultConfig returns the compiled-in configuration.
func GetDefaultConfig() Config {
	minSwipe := float64(defaultMinSwipeRows)
	return Config{
		Navigation: NavigationConfig{
			TransitionWindow: slides.DefaultTransitionWindow,
			WheelCooldown:    slides.DefaultWheelCooldown,
			AutoPlayInterval: slides.DefaultAutoPlayInterval,
			HintDuration:     slides.DefaultHintDuration,
			MinSwipeDistance: &minSwipe,
			MaxSwipeDuration: slides.DefaultMaxSwipeDuration,
		},
		Display: DisplayConfig{
			Theme: ThemeDark,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
