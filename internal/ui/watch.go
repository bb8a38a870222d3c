package ui

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdslides/internal/deck"
	"github.com/kyaoi/mdslides/pkg/logging"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// startWatching watches the deck source: the parent directory of a deck
// file, or the deck directory and every subdirectory it loads from.
func (m *Model) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}

	if m.deck.IsDir {
		m.watchDir = path
		if err := m.watchTree(path); err != nil {
			m.err = err
			return nil
		}
		return m.waitForFileEvent()
	}

	dir := filepath.Dir(path)
	m.watchedFile = path
	if dir != m.watchDir {
		if m.watchDir != "" {
			_ = m.watcher.Remove(m.watchDir)
		}
		if err := m.watcher.Add(dir); err != nil {
			m.err = err
			return nil
		}
		m.watchDir = dir
	}
	logging.Debug("ui", "watching %s", dir)
	return m.waitForFileEvent()
}

// watchTree adds root and its subdirectories to the watcher, skipping the
// directories a deck never loads from.
func (m *Model) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && deck.SkipDir(entry.Name()) {
			return filepath.SkipDir
		}
		if m.watchedDirs[path] {
			return nil
		}
		if err := m.watcher.Add(path); err != nil {
			return err
		}
		m.watchedDirs[path] = true
		logging.Debug("ui", "watching %s", path)
		return nil
	})
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)
	m.watchedDirs = make(map[string]bool)

	go m.watchLoop(watcher, m.watchChan)
	return nil
}

func (m *Model) watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	path := filepath.Clean(msg.path)
	reload := m.affectsDeck(path)
	if m.deck.IsDir {
		switch {
		case msg.op&fsnotify.Create != 0 && m.underDeck(path) && !deck.SkipDir(filepath.Base(path)) && isDir(path):
			// A new folder may already hold slides, e.g. after a move.
			if err := m.watchTree(path); err != nil {
				logging.Warn("ui", "watch %s failed: %v", path, err)
			}
			reload = true
		case msg.op&(fsnotify.Remove|fsnotify.Rename) != 0 && m.watchedDirs[path]:
			m.forgetTree(path)
			reload = true
		}
	}
	if reload {
		m.reloadDeck()
	}
	return m.waitForFileEvent()
}

// affectsDeck reports whether a change to path can change the slides.
func (m *Model) affectsDeck(path string) bool {
	path = filepath.Clean(path)
	if m.deck.IsDir {
		return m.underDeck(path) && deck.IsMarkdown(path)
	}
	return m.watchedFile != "" && path == m.watchedFile
}

// underDeck reports whether path lies below the deck directory outside any
// skipped directory.
func (m *Model) underDeck(path string) bool {
	if m.watchDir == "" {
		return false
	}
	rel, err := filepath.Rel(m.watchDir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range parts[:len(parts)-1] {
		if deck.SkipDir(dir) {
			return false
		}
	}
	return true
}

// forgetTree drops a vanished directory and its subdirectories; fsnotify
// removes their watches itself.
func (m *Model) forgetTree(dir string) {
	prefix := dir + string(filepath.Separator)
	for path := range m.watchedDirs {
		if path == dir || strings.HasPrefix(path, prefix) {
			delete(m.watchedDirs, path)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// reloadDeck reads the deck source again. A broken edit keeps the current
// deck on screen and reports the error.
func (m *Model) reloadDeck() {
	if m.deck.Source == "" {
		return
	}
	d, err := deck.LoadWith(m.deck.Source, deck.Options{Tag: m.deck.Tag, Include: m.deck.Include})
	if err != nil {
		logging.Warn("ui", "reload of %s failed: %v", m.deck.Source, err)
		m.err = err
		return
	}
	if err := m.replaceDeck(d); err != nil {
		m.err = err
	}
}
