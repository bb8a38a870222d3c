package slides

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kyaoi/mdslides/pkg/logging"
)

const subsystem = "slides"

// ErrIndexOutOfRange reports a goto request outside [0, N-1]. It signals
// caller misuse and is never raised for routine rejections.
var ErrIndexOutOfRange = errors.New("slide index out of range")

// Snapshot is a read-only copy of the navigation state.
type Snapshot struct {
	Index         int
	Total         int
	Transitioning bool
	AutoPlay      bool
	HintVisible   bool
}

// Observer receives a snapshot after every visible state change. It is
// called with the controller lock held and must neither block nor call back
// into the Controller.
type Observer func(Snapshot)

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithObserver registers the rendering collaborator.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithStartIndex starts the controller on a slide other than the first. Out
// of range values are clamped.
func WithStartIndex(i int) Option {
	return func(c *Controller) {
		c.start = i
	}
}

type task struct {
	timer Timer
	seq   uint64
}

type swipeStart struct {
	y  float64
	at time.Time
}

// Controller owns the navigation state of a slide deck. It turns wheel, key,
// swipe, goto and auto-play input into at most one slide change per
// transition window. Rejected input leaves the state untouched and emits no
// notification.
type Controller struct {
	mu       sync.Mutex
	set      SlideSet
	cfg      Config
	sched    Scheduler
	observer Observer
	start    int

	index         int
	transitioning bool
	autoPlay      bool
	hintVisible   bool

	wheelLocked bool
	swipe       *swipeStart
	closed      bool

	transitionTask task
	wheelTask      task
	autoPlayTask   task
	hintTask       task
}

// NewController creates a controller in the idle state.
func NewController(set SlideSet, cfg Config, opts ...Option) (*Controller, error) {
	if set.Len() == 0 {
		return nil, ErrEmptySlideSet
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid controller config: %w", err)
	}
	c := &Controller{
		set:   set,
		cfg:   cfg,
		sched: SystemScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.index = clamp(c.start, 0, set.Len()-1)

	if cfg.HintDuration > 0 {
		c.mu.Lock()
		c.hintVisible = true
		c.schedule(&c.hintTask, cfg.HintDuration, func() bool {
			if !c.hintVisible {
				return false
			}
			c.hintVisible = false
			return true
		})
		c.mu.Unlock()
	}
	return c, nil
}

// Slides returns the slide set driven by the controller.
func (c *Controller) Slides() SlideSet {
	return c.set
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Snapshot returns the current navigation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// RequestGoto moves to the given slide. An index outside the slide set is a
// contract violation reported as ErrIndexOutOfRange; every other rejection
// returns false without error.
func (c *Controller) RequestGoto(index int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= c.set.Len() {
		return false, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, c.set.Len()-1)
	}
	if !c.idleLocked() {
		return false, nil
	}
	return c.manualGotoLocked(index), nil
}

// RequestRelative moves one slide forward (dir > 0) or backward (dir < 0),
// stopping at either end of the deck.
func (c *Controller) RequestRelative(dir int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.idleLocked() {
		return false
	}
	return c.relativeLocked(dir)
}

// HandleWheel applies a wheel movement. Wheel input is debounced: once one
// event passes the gate, others are dropped until the cooldown elapses.
func (c *Controller) HandleWheel(deltaY float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.idleLocked() || c.wheelLocked || deltaY == 0 {
		return false
	}
	c.wheelLocked = true
	c.schedule(&c.wheelTask, c.cfg.WheelCooldown, func() bool {
		c.wheelLocked = false
		return false
	})
	return c.relativeLocked(sign(deltaY))
}

// HandleKey applies a navigation key. All keys are ignored mid-transition.
func (c *Controller) HandleKey(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.idleLocked() {
		return false
	}
	switch k {
	case KeyDown, KeyPageDown, KeySpace:
		return c.relativeLocked(1)
	case KeyUp, KeyPageUp:
		return c.relativeLocked(-1)
	case KeyHome:
		return c.manualGotoLocked(0)
	case KeyEnd:
		return c.manualGotoLocked(c.set.Len() - 1)
	case KeyEscape:
		if !c.autoPlay {
			return false
		}
		c.stopAutoPlayLocked()
		logging.Debug(subsystem, "auto-play stopped by escape")
		c.emitLocked()
		return true
	default:
		return false
	}
}

// HandleSwipe applies a completed vertical swipe. Short or slow gestures are
// ignored. Swiping up (startY > endY) moves forward.
func (c *Controller) HandleSwipe(startY, endY float64, startT, endT time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.swipeLocked(startY, endY, startT, endT)
}

func (c *Controller) swipeLocked(startY, endY float64, startT, endT time.Time) bool {
	if !c.idleLocked() {
		return false
	}
	deltaY := startY - endY
	if abs(deltaY) <= c.cfg.MinSwipeDistance {
		return false
	}
	if endT.Sub(startT) >= c.cfg.MaxSwipeDuration {
		return false
	}
	return c.relativeLocked(sign(deltaY))
}

// ToggleAutoPlay flips auto-play and returns the new setting.
func (c *Controller) ToggleAutoPlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.autoPlay
	}
	if c.autoPlay {
		c.stopAutoPlayLocked()
	} else {
		c.autoPlay = true
		if !c.transitioning {
			c.scheduleAutoPlayLocked()
		}
	}
	logging.Debug(subsystem, "auto-play toggled to %t", c.autoPlay)
	c.emitLocked()
	return c.autoPlay
}

// OnAutoPlayTick advances to the next slide, wrapping to the first after the
// last. It does nothing unless auto-play is on and no transition runs, and
// it never turns auto-play off.
func (c *Controller) OnAutoPlayTick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tickLocked() {
		return false
	}
	c.emitLocked()
	return true
}

// Close cancels every pending task. Later calls leave the state untouched.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.swipe = nil
	for _, t := range []*task{&c.transitionTask, &c.wheelTask, &c.autoPlayTask, &c.hintTask} {
		c.cancel(t)
	}
	logging.Debug(subsystem, "controller closed at slide %d", c.index)
}

func (c *Controller) idleLocked() bool {
	return !c.closed && !c.transitioning
}

func (c *Controller) relativeLocked(dir int) bool {
	if dir == 0 {
		return false
	}
	target := clamp(c.index+sign(float64(dir)), 0, c.set.Len()-1)
	return c.manualGotoLocked(target)
}

// manualGotoLocked is the accept path for user navigation, which cancels
// auto-play.
func (c *Controller) manualGotoLocked(index int) bool {
	if index == c.index {
		return false
	}
	c.stopAutoPlayLocked()
	c.acceptLocked(index)
	c.emitLocked()
	return true
}

func (c *Controller) tickLocked() bool {
	if c.closed || !c.autoPlay || c.transitioning {
		return false
	}
	next := (c.index + 1) % c.set.Len()
	if next == c.index {
		return false
	}
	c.acceptLocked(next)
	return true
}

func (c *Controller) acceptLocked(index int) {
	logging.Debug(subsystem, "slide %d -> %d", c.index, index)
	c.index = index
	c.transitioning = true
	c.cancel(&c.autoPlayTask)
	if c.hintVisible {
		c.hintVisible = false
		c.cancel(&c.hintTask)
	}
	c.schedule(&c.transitionTask, c.cfg.TransitionWindow, func() bool {
		if !c.transitioning {
			return false
		}
		c.transitioning = false
		if c.autoPlay {
			c.scheduleAutoPlayLocked()
		}
		return true
	})
}

func (c *Controller) stopAutoPlayLocked() {
	c.autoPlay = false
	c.cancel(&c.autoPlayTask)
}

func (c *Controller) scheduleAutoPlayLocked() {
	c.schedule(&c.autoPlayTask, c.cfg.AutoPlayInterval, c.tickLocked)
}

// schedule replaces the task in t with fn after d. fn runs under the lock
// and reports whether observers must be notified.
func (c *Controller) schedule(t *task, d time.Duration, fn func() bool) {
	c.cancel(t)
	seq := t.seq
	t.timer = c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || t.seq != seq {
			return
		}
		t.timer = nil
		t.seq++
		if fn() {
			c.emitLocked()
		}
	})
}

func (c *Controller) cancel(t *task) {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
}

func (c *Controller) emitLocked() {
	if c.observer != nil {
		c.observer(c.snapshotLocked())
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Index:         c.index,
		Total:         c.set.Len(),
		Transitioning: c.transitioning,
		AutoPlay:      c.autoPlay,
		HintVisible:   c.hintVisible,
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
