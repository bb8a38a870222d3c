package deck

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyaoi/mdslides/internal/slides"
	"github.com/kyaoi/mdslides/pkg/logging"
)

//go:embed builtin/fusion.md
var fusionDeck []byte

// Builtin returns the embedded nuclear fusion presentation.
func Builtin() (*Deck, error) {
	return Parse("fusion", bytes.NewReader(fusionDeck))
}

// Options filter what a deck source contributes.
type Options struct {
	// Tag keeps only files whose front matter lists this tag.
	Tag string
	// Include limits a directory deck to files matching one of these
	// doublestar patterns, tried against the relative path and the base
	// name. Ignored for single-file decks.
	Include []string
}

// Load reads a deck from a Markdown file or a directory of Markdown files.
// An empty target selects the built-in deck.
func Load(target string) (*Deck, error) {
	return LoadWith(target, Options{})
}

// LoadWith is Load with filtering options.
func LoadWith(target string, opts Options) (*Deck, error) {
	if target == "" {
		if opts.Tag != "" {
			return nil, fmt.Errorf("tag filter needs a deck file or directory")
		}
		return Builtin()
	}
	absTarget, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return loadDir(absTarget, opts)
	}
	d, err := LoadFile(absTarget)
	if err != nil {
		return nil, err
	}
	if opts.Tag != "" {
		if !d.HasTag(opts.Tag) {
			return nil, fmt.Errorf("%s is not tagged %q: %w", absTarget, opts.Tag, ErrNoSlides)
		}
		d.Tag = opts.Tag
	}
	return d, nil
}

// LoadFile reads a single Markdown deck file.
func LoadFile(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := Parse(name, f)
	if err != nil {
		return nil, err
	}
	d.Source = path
	logging.Info("deck", "loaded %d slides from %s", d.Slides.Len(), path)
	return d, nil
}

// LoadDir builds one deck from every Markdown file below root. The first
// file's front matter provides the deck metadata.
func LoadDir(root string) (*Deck, error) {
	return loadDir(root, Options{})
}

func loadDir(root string, opts Options) (*Deck, error) {
	files, err := markdownFiles(root)
	if err != nil {
		return nil, err
	}
	files = filterIncluded(files, opts.Include)
	if len(files) == 0 {
		return nil, fmt.Errorf("no Markdown files in %s: %w", root, ErrNoSlides)
	}

	tag := opts.Tag
	d := &Deck{Source: root, IsDir: true, Tag: tag, Include: opts.Include}
	ids := make(map[string]int)
	var list []slides.Slide
	first := true
	for _, rel := range files {
		data, err := os.ReadFile(abs(root, rel))
		if err != nil {
			return nil, err
		}
		part, err := Parse(rel, bytes.NewReader(data))
		if err != nil {
			logging.Warn("deck", "skipping %s: %v", rel, err)
			continue
		}
		if tag != "" && !part.HasTag(tag) {
			continue
		}
		if first {
			d.Meta = part.Meta
			first = false
		}
		var bodies []string
		for _, s := range part.Slides.Slides() {
			bodies = append(bodies, s.Body)
		}
		list = append(list, buildSlides(bodies, ids, len(list))...)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoSlides)
	}
	if d.Meta.Title == "" || isMarkdown(d.Meta.Title) {
		d.Meta.Title = filepath.Base(root)
	}

	set, err := slides.NewSlideSet(list...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	d.Slides = set
	logging.Info("deck", "loaded %d slides from %d files in %s", set.Len(), len(files), root)
	return d, nil
}
