package ui

import (
	"github.com/kyaoi/mdslides/internal/deck"
	"github.com/kyaoi/mdslides/internal/slides"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Deck       *deck.Deck
	Controller slides.Config
	// Scheduler drives the controller's timers; nil uses the wall clock.
	Scheduler slides.Scheduler
	DarkTheme bool
	AutoPlay  bool
	// Watch enables live reload of the deck source.
	Watch bool
}
