// Package replay drives a slide controller from a scripted list of input
// events on virtual time, without any terminal.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kyaoi/mdslides/internal/slides"
	"github.com/kyaoi/mdslides/pkg/logging"
)

// ErrUnknownEvent is returned for script steps that name no known event or
// key.
var ErrUnknownEvent = errors.New("unknown event")

// Step is one scripted input. After is the virtual time that passes before
// the event is dispatched.
type Step struct {
	After time.Duration `yaml:"after,omitempty"`
	Event string        `yaml:"event"`
	Key   string        `yaml:"key,omitempty"`
	Delta float64       `yaml:"delta,omitempty"`
	Y     float64       `yaml:"y,omitempty"`
	Index int           `yaml:"index,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Run plays the script against a fresh controller and writes one line per
// step to w. The controller is closed before Run returns.
func Run(set slides.SlideSet, cfg slides.Config, script Script, w io.Writer) (slides.Snapshot, error) {
	sched := slides.NewManualScheduler(epoch)
	ctrl, err := slides.NewController(set, cfg, slides.WithScheduler(sched))
	if err != nil {
		return slides.Snapshot{}, err
	}
	defer ctrl.Close()

	for i, step := range script.Steps {
		if step.After < 0 {
			return ctrl.Snapshot(), fmt.Errorf("step %d: negative delay %s", i+1, step.After)
		}
		sched.Advance(step.After)

		label := step.Event
		accepted := false
		if step.Event != "wait" {
			ev, err := step.toEvent(sched.Now())
			if err != nil {
				return ctrl.Snapshot(), fmt.Errorf("step %d: %w", i+1, err)
			}
			label = ev.String()
			accepted, err = ctrl.Dispatch(ev)
			if err != nil {
				return ctrl.Snapshot(), fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		snap := ctrl.Snapshot()
		logging.Debug("replay", "step %d %s accepted=%t index=%d", i+1, label, accepted, snap.Index)
		if _, err := fmt.Fprintf(w, "t=%s %s accepted=%t index=%d/%d transitioning=%t autoplay=%t\n",
			sched.Now().Sub(epoch), label, accepted, snap.Index, snap.Total, snap.Transitioning, snap.AutoPlay); err != nil {
			return snap, err
		}
	}
	return ctrl.Snapshot(), nil
}

func (s Step) toEvent(now time.Time) (slides.Event, error) {
	switch s.Event {
	case "wheel":
		return slides.Wheel{DeltaY: s.Delta}, nil
	case "key":
		k, ok := slides.ParseKey(s.Key)
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrUnknownEvent, s.Key)
		}
		return slides.KeyPress{Key: k}, nil
	case "swipe_start":
		return slides.SwipeStart{Y: s.Y, At: now}, nil
	case "swipe_end":
		return slides.SwipeEnd{Y: s.Y, At: now}, nil
	case "goto":
		return slides.Goto{Index: s.Index}, nil
	case "escape":
		return slides.Escape{}, nil
	case "tick":
		return slides.AutoPlayTick{}, nil
	case "toggle_autoplay":
		return slides.ToggleAutoPlay{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, s.Event)
	}
}
