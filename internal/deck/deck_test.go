package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(d *Deck) []string {
	var out []string
	for _, s := range d.Slides.Slides() {
		out = append(out, s.Name)
	}
	return out
}

func TestParse_FrontMatterAndSeparators(t *testing.T) {
	src := `---
title: Quarterly Review
theme: light
autoplay: true
---

# Intro

hello

---

## Numbers

` + "```" + `
a
---
b
` + "```" + `

---


---

plain text only
`
	d, err := Parse("review", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Review", d.Title)
	assert.Equal(t, "light", d.Theme)
	assert.True(t, d.AutoPlay)
	assert.Equal(t, []string{"Intro", "Numbers", "Slide 3"}, names(d))
	assert.Contains(t, d.Slides.At(1).Body, "a\n---\nb")
	assert.Equal(t, "numbers", d.Slides.At(1).ID)
}

func TestParse_NoFrontMatter(t *testing.T) {
	d, err := Parse("notes", strings.NewReader("# One\n\n---\n\n# One\n"))
	require.NoError(t, err)

	assert.Equal(t, "notes", d.Title)
	assert.Equal(t, "one", d.Slides.At(0).ID)
	assert.Equal(t, "one-2", d.Slides.At(1).ID)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("empty", strings.NewReader("\n---\n\n---\n"))
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestSlideName(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"# Title", "Title"},
		{"text\n### Deep heading ###", "Deep heading"},
		{"```\n# not a heading\n```\n## Real", "Real"},
		{"no heading", "Slide 4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slideName(tt.body, 4), tt.body)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-road-to-the-grid", slugify("The road to the grid!"))
	assert.Equal(t, "d-t-fusion", slugify("  D + T fusion "))
	assert.Equal(t, "slide", slugify("核融合"))
}

func TestBuiltin(t *testing.T) {
	d, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, "Nuclear Fusion", d.Title)
	assert.Empty(t, d.Source)
	assert.Equal(t, []string{
		"Home", "Basics", "Process", "Simulation",
		"Benefits", "Challenges", "Projects", "Future",
	}, names(d))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n---\n# B\n"), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "talk", d.Title)
	assert.Equal(t, path, d.Source)
	assert.False(t, d.IsDir)
	assert.Equal(t, 2, d.Slides.Len())
}

func TestLoad_Dir(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("01-intro.md", "---\ntitle: Dir Talk\n---\n# Intro\n---\n# Agenda\n")
	write("02-Body.MD", "# Body\n")
	write("appendix/99-extra.mdx", "# Intro\n")
	write("notes.txt", "# ignored\n")
	write(".git/HEAD.md", "# ignored\n")

	d, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, d.IsDir)
	assert.Equal(t, "Dir Talk", d.Title)
	assert.Equal(t, []string{"Intro", "Agenda", "Body", "Intro"}, names(d))
	assert.Equal(t, "intro-2", d.Slides.At(3).ID)
}

func TestLoad_DirWithoutMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestLoadWith_Tag(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	tagged := write("a.md", "---\ntags: [Keynote, draft]\n---\n# Tagged\n")
	write("b.md", "---\ntags: [internal]\n---\n# Internal\n")
	write("c.md", "# Untagged\n")

	d, err := LoadWith(dir, Options{Tag: "keynote"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tagged"}, names(d))
	assert.Equal(t, "keynote", d.Tag)
	assert.Equal(t, filepath.Base(dir), d.Title)

	d, err = LoadWith(tagged, Options{Tag: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "draft", d.Tag)

	_, err = LoadWith(tagged, Options{Tag: "internal"})
	assert.ErrorIs(t, err, ErrNoSlides)

	_, err = LoadWith(dir, Options{Tag: "missing"})
	assert.ErrorIs(t, err, ErrNoSlides)

	_, err = LoadWith("", Options{Tag: "keynote"})
	assert.Error(t, err)
}

func TestLoadWith_Include(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("intro.md", "# Intro\n")
	write("chapters/one.md", "# One\n")
	write("chapters/deep/two.md", "# Two\n")
	write("drafts/wip.md", "# WIP\n")

	tests := []struct {
		name    string
		include []string
		want    []string
	}{
		{name: "no patterns", include: nil, want: []string{"Intro", "One", "Two", "WIP"}},
		{name: "recursive glob", include: []string{"chapters/**/*.md"}, want: []string{"One", "Two"}},
		{name: "base name", include: []string{"intro.md", "two.md"}, want: []string{"Intro", "Two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := LoadWith(dir, Options{Include: tt.include})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(d))
			assert.Equal(t, tt.include, d.Include)
		})
	}

	_, err := LoadWith(dir, Options{Include: []string{"*.txt"}})
	assert.ErrorIs(t, err, ErrNoSlides)
}

func TestSkipDirAndIsMarkdown(t *testing.T) {
	assert.True(t, SkipDir(".git"))
	assert.True(t, SkipDir("Node_Modules"))
	assert.False(t, SkipDir("chapters"))

	assert.True(t, IsMarkdown("chapters/One.MD"))
	assert.True(t, IsMarkdown("slides.mdx"))
	assert.False(t, IsMarkdown("notes.txt"))
}
