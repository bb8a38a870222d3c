package slides

import (
	"errors"
	"time"
)

const (
	DefaultTransitionWindow = 800 * time.Millisecond
	DefaultWheelCooldown    = 1000 * time.Millisecond
	DefaultAutoPlayInterval = 8 * time.Second
	DefaultHintDuration     = 5 * time.Second
	DefaultMinSwipeDistance = 30
	DefaultMaxSwipeDuration = 500 * time.Millisecond
)

// Config holds the timing and gesture thresholds of a Controller.
//
// TransitionWindow must match the duration of the rendering layer's slide
// animation, otherwise slides snap or accept input mid-animation.
type Config struct {
	TransitionWindow time.Duration
	WheelCooldown    time.Duration
	AutoPlayInterval time.Duration
	// HintDuration is how long the navigation hint stays visible. Zero
	// disables the hint.
	HintDuration     time.Duration
	MinSwipeDistance float64
	MaxSwipeDuration time.Duration
}

// DefaultConfig returns the stock controller configuration.
func DefaultConfig() Config {
	return Config{
		TransitionWindow: DefaultTransitionWindow,
		WheelCooldown:    DefaultWheelCooldown,
		AutoPlayInterval: DefaultAutoPlayInterval,
		HintDuration:     DefaultHintDuration,
		MinSwipeDistance: DefaultMinSwipeDistance,
		MaxSwipeDuration: DefaultMaxSwipeDuration,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.TransitionWindow <= 0:
		return errors.New("transition window must be positive")
	case c.WheelCooldown <= 0:
		return errors.New("wheel cooldown must be positive")
	case c.AutoPlayInterval <= 0:
		return errors.New("auto-play interval must be positive")
	case c.HintDuration < 0:
		return errors.New("hint duration must not be negative")
	case c.MinSwipeDistance < 0:
		return errors.New("minimum swipe distance must not be negative")
	case c.MaxSwipeDuration <= 0:
		return errors.New("maximum swipe duration must be positive")
	}
	return nil
}
