package slides

import (
	"errors"
	"fmt"
)

// ErrEmptySlideSet is returned when a SlideSet would contain no slides.
var ErrEmptySlideSet = errors.New("slide set is empty")

// Slide is a single full-screen panel of a presentation.
type Slide struct {
	ID   string
	Name string
	// Body holds the Markdown drawn by the rendering layer.
	Body string
}

// SlideSet is an ordered, fixed-length sequence of slides.
type SlideSet struct {
	slides []Slide
}

// NewSlideSet copies the given slides into an immutable set.
func NewSlideSet(slides ...Slide) (SlideSet, error) {
	if len(slides) == 0 {
		return SlideSet{}, ErrEmptySlideSet
	}
	seen := make(map[string]int, len(slides))
	for i, s := range slides {
		if s.ID == "" {
			return SlideSet{}, fmt.Errorf("slide %d has no id", i)
		}
		if prev, ok := seen[s.ID]; ok {
			return SlideSet{}, fmt.Errorf("slide %d reuses id %q of slide %d", i, s.ID, prev)
		}
		seen[s.ID] = i
	}
	cp := make([]Slide, len(slides))
	copy(cp, slides)
	return SlideSet{slides: cp}, nil
}

// Len returns the number of slides.
func (s SlideSet) Len() int {
	return len(s.slides)
}

// At returns the slide at index i. It panics when i is out of range.
func (s SlideSet) At(i int) Slide {
	return s.slides[i]
}

// Slides returns a copy of the slides in order.
func (s SlideSet) Slides() []Slide {
	cp := make([]Slide, len(s.slides))
	copy(cp, s.slides)
	return cp
}

// IndexOf returns the index of the slide with the given id, or -1.
func (s SlideSet) IndexOf(id string) int {
	for i, slide := range s.slides {
		if slide.ID == id {
			return i
		}
	}
	return -1
}
