package deck

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/kyaoi/mdslides/internal/slides"
)

// ErrNoSlides is returned for sources that contain no non-blank slide.
var ErrNoSlides = errors.New("deck has no slides")

// Meta is the optional YAML front matter of a deck file.
type Meta struct {
	Title    string   `yaml:"title"`
	Theme    string   `yaml:"theme"`
	AutoPlay bool     `yaml:"autoplay"`
	Tags     []string `yaml:"tags"`
}

// HasTag reports whether the front matter lists tag, ignoring case.
func (m Meta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// Deck is a loaded presentation.
type Deck struct {
	Meta
	// Source is the absolute path the deck was read from; empty for the
	// built-in deck.
	Source string
	IsDir  bool
	// Tag and Include are the filters the deck was loaded with, if any.
	Tag     string
	Include []string
	Slides  slides.SlideSet
}

// Parse reads a single Markdown deck. name is used as the title when the
// front matter has none.
func Parse(name string, r io.Reader) (*Deck, error) {
	var meta Meta
	rest, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter of %s: %w", name, err)
	}
	if meta.Title == "" {
		meta.Title = name
	}

	ids := make(map[string]int)
	list := buildSlides(splitSlides(string(rest)), ids, 0)
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSlides)
	}
	set, err := slides.NewSlideSet(list...)
	if err != nil {
		return nil, err
	}
	return &Deck{Meta: meta, Slides: set}, nil
}

func buildSlides(bodies []string, ids map[string]int, offset int) []slides.Slide {
	var out []slides.Slide
	for i, body := range bodies {
		name := slideName(body, offset+i+1)
		out = append(out, slides.Slide{
			ID:   uniqueID(slugify(name), ids),
			Name: name,
			Body: body,
		})
	}
	return out
}

// splitSlides cuts Markdown on lines consisting of "---", ignoring separators
// inside fenced code blocks. Blank slides are dropped.
func splitSlides(content string) []string {
	var (
		out     []string
		current strings.Builder
		fence   string
	)
	flush := func() {
		body := strings.TrimSpace(current.String())
		if body != "" {
			out = append(out, body)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		case trimmed == "---":
			flush()
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	flush()
	return out
}

var headingRe = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*\s*$`)

func slideName(body string, n int) string {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			return m[1]
		}
	}
	return fmt.Sprintf("Slide %d", n)
}

func slugify(name string) string {
	var b bytes.Buffer
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "slide"
	}
	return slug
}

func uniqueID(slug string, ids map[string]int) string {
	ids[slug]++
	if n := ids[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}
