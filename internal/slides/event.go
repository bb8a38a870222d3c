package slides

import (
	"fmt"
	"time"
)

// Event is a navigation input. The concrete types below are the only
// implementations.
type Event interface {
	isEvent()
	fmt.Stringer
}

// Wheel is a scroll movement; positive DeltaY scrolls down.
type Wheel struct{ DeltaY float64 }

// KeyPress is a navigation key.
type KeyPress struct{ Key Key }

// SwipeStart marks the point where a vertical drag began.
type SwipeStart struct {
	Y  float64
	At time.Time
}

// SwipeEnd completes the drag begun by the last SwipeStart.
type SwipeEnd struct {
	Y  float64
	At time.Time
}

// Goto requests a specific slide.
type Goto struct{ Index int }

// Escape stops auto-play.
type Escape struct{}

// AutoPlayTick advances auto-play by one slide.
type AutoPlayTick struct{}

// ToggleAutoPlay flips auto-play.
type ToggleAutoPlay struct{}

func (Wheel) isEvent()          {}
func (KeyPress) isEvent()       {}
func (SwipeStart) isEvent()     {}
func (SwipeEnd) isEvent()       {}
func (Goto) isEvent()           {}
func (Escape) isEvent()         {}
func (AutoPlayTick) isEvent()   {}
func (ToggleAutoPlay) isEvent() {}

func (e Wheel) String() string        { return fmt.Sprintf("wheel:%g", e.DeltaY) }
func (e KeyPress) String() string     { return "key:" + e.Key.String() }
func (e SwipeStart) String() string   { return fmt.Sprintf("swipe_start:%g", e.Y) }
func (e SwipeEnd) String() string     { return fmt.Sprintf("swipe_end:%g", e.Y) }
func (e Goto) String() string         { return fmt.Sprintf("goto:%d", e.Index) }
func (Escape) String() string         { return "escape" }
func (AutoPlayTick) String() string   { return "tick" }
func (ToggleAutoPlay) String() string { return "toggle_autoplay" }

// Dispatch routes an event to the matching handler and reports whether it
// changed the navigation state. Only Goto can fail, with ErrIndexOutOfRange.
func (c *Controller) Dispatch(ev Event) (bool, error) {
	switch e := ev.(type) {
	case Wheel:
		return c.HandleWheel(e.DeltaY), nil
	case KeyPress:
		return c.HandleKey(e.Key), nil
	case Escape:
		return c.HandleKey(KeyEscape), nil
	case SwipeStart:
		c.mu.Lock()
		if !c.closed {
			c.swipe = &swipeStart{y: e.Y, at: e.At}
		}
		c.mu.Unlock()
		return false, nil
	case SwipeEnd:
		c.mu.Lock()
		defer c.mu.Unlock()
		start := c.swipe
		c.swipe = nil
		if start == nil {
			return false, nil
		}
		return c.swipeLocked(start.y, e.Y, start.at, e.At), nil
	case Goto:
		return c.RequestGoto(e.Index)
	case AutoPlayTick:
		return c.OnAutoPlayTick(), nil
	case ToggleAutoPlay:
		before := c.Snapshot().AutoPlay
		return c.ToggleAutoPlay() != before, nil
	default:
		return false, fmt.Errorf("unsupported event %T", ev)
	}
}
