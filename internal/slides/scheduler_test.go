package slides

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_RunsInDueOrder(t *testing.T) {
	s := NewManualScheduler(epoch)
	var order []string
	s.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(200 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, epoch.Add(200*time.Millisecond), s.Now())
	assert.Equal(t, 1, s.Pending())

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler(epoch)
	fired := false
	timer := s.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	s.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestManualScheduler_CallbackCanReschedule(t *testing.T) {
	s := NewManualScheduler(epoch)
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, s.Now().Sub(epoch))
		if len(at) < 3 {
			s.AfterFunc(time.Second, tick)
		}
	}
	s.AfterFunc(time.Second, tick)

	s.Advance(10 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, at)
}

func TestSlideSet(t *testing.T) {
	_, err := NewSlideSet()
	assert.ErrorIs(t, err, ErrEmptySlideSet)

	_, err = NewSlideSet(Slide{ID: "a"}, Slide{ID: "a"})
	assert.Error(t, err)

	_, err = NewSlideSet(Slide{Name: "no id"})
	assert.Error(t, err)

	in := []Slide{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	set, err := NewSlideSet(in...)
	assert.NoError(t, err)
	in[0].Name = "changed"
	assert.Equal(t, "A", set.At(0).Name)
	assert.Equal(t, 1, set.IndexOf("b"))
	assert.Equal(t, -1, set.IndexOf("z"))
	assert.Len(t, set.Slides(), 2)
}
