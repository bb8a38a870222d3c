package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdslides/internal/deck"
	"github.com/kyaoi/mdslides/internal/slides"
	"github.com/kyaoi/mdslides/pkg/logging"
)

const (
	chromeHeight    = 3
	minContentWidth = 20
	progressWidth   = 16
	frameInterval   = 16 * time.Millisecond
	statusDuration  = 3 * time.Second
	navDotsOffset   = 1
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Model implements the Bubble Tea program for the slide presenter. It is the
// rendering collaborator of a slides.Controller: input is forwarded to the
// controller and the view is rebuilt from controller snapshots.
type Model struct {
	contentVP viewport.Model
	renderer  *glamour.TermRenderer
	progress  progress.Model
	help      help.Model
	keys      KeyMap

	deck     *deck.Deck
	ctrl     *slides.Controller
	ctrlCfg  slides.Config
	sched    slides.Scheduler
	snap     slides.Snapshot
	changes  chan struct{}
	rendered map[int]string
	closed   bool

	darkTheme       bool
	showHelp        bool
	ready           bool
	width           int
	height          int
	err             error
	status          string
	statusSeq       int
	animating       bool
	transitionStart time.Time
	press           *mousePress
	now             func() time.Time

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int

	watch       bool
	watcher     *fsnotify.Watcher
	watchDir    string
	watchedDirs map[string]bool
	watchedFile string
	watchChan   chan tea.Msg
}

type mousePress struct {
	x, y int
	at   time.Time
}

// changedMsg wakes the model after the controller changed state.
type changedMsg struct{}

type animFrameMsg time.Time

type statusClearMsg struct {
	seq int
}

// NewModel constructs the presenter model for the provided initial state.
func NewModel(state State) (*Model, error) {
	if state.Deck == nil {
		return nil, fmt.Errorf("no deck to present")
	}

	contentVP := viewport.New(0, 0)
	contentVP.Style = lipgloss.NewStyle().Padding(0, 1)
	contentVP.MouseWheelEnabled = false

	m := &Model{
		contentVP:   contentVP,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:        help.New(),
		keys:        DefaultKeyMap(),
		deck:        state.Deck,
		ctrlCfg:     state.Controller,
		sched:       state.Scheduler,
		changes:     make(chan struct{}, 1),
		rendered:    make(map[int]string),
		darkTheme:   state.DarkTheme,
		now:         time.Now,
		searchIndex: -1,
		watch:       state.Watch && state.Deck.Source != "",
	}
	m.progress.Width = progressWidth

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search"
	searchInput.CursorEnd()
	searchInput.Blur()
	m.searchInput = searchInput

	ctrl, err := m.newController(state.Deck.Slides, m.ctrlCfg, 0)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	if state.AutoPlay {
		ctrl.ToggleAutoPlay()
	}
	m.snap = ctrl.Snapshot()
	return m, nil
}

func (m *Model) newController(set slides.SlideSet, cfg slides.Config, start int) (*slides.Controller, error) {
	opts := []slides.Option{
		slides.WithObserver(m.notify),
		slides.WithStartIndex(start),
	}
	if m.sched != nil {
		opts = append(opts, slides.WithScheduler(m.sched))
	}
	return slides.NewController(set, cfg, opts...)
}

// notify runs under the controller lock, so it only signals.
func (m *Model) notify(slides.Snapshot) {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Controller returns the slide controller behind the model.
func (m *Model) Controller() *slides.Controller {
	return m.ctrl
}

// Close stops the controller timers and the file watcher, and releases the
// pending change wait. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	// A closed controller never notifies again, so the channel can go.
	m.ctrl.Close()
	close(m.changes)
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForChange()}
	if m.watch {
		cmds = append(cmds, m.startWatching(m.deck.Source))
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		return m, tea.Batch(m.sync(), m.waitForChange())
	case animFrameMsg:
		if m.snap.Transitioning {
			return m, m.nextFrame()
		}
		m.animating = false
		return m, nil
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(m.searchInput.Value())
			m.exitSearchMode()
			if query == "" {
				m.clearSearch()
				return m, nil
			}
			m.performSearch(query)
			return m, m.sync()
		case tea.KeyEsc, tea.KeyCtrlC:
			m.exitSearchMode()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch msg.String() {
		case "q", "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.darkTheme = !m.darkTheme
		m.resize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keys.AutoPlay):
		m.ctrl.ToggleAutoPlay()
		return m, m.sync()
	case key.Matches(msg, m.keys.Jump):
		n := int(msg.String()[0] - '1')
		if n < m.snap.Total {
			if _, err := m.ctrl.RequestGoto(n); err != nil {
				m.err = err
			}
		}
		return m, m.sync()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySlide()
	case key.Matches(msg, m.keys.Search):
		return m, m.enterSearchMode()
	case key.Matches(msg, m.keys.NextMatch):
		m.nextSearchMatch()
		return m, m.sync()
	case key.Matches(msg, m.keys.PrevMatch):
		m.previousSearchMatch()
		return m, m.sync()
	case key.Matches(msg, m.keys.ScrollDown):
		m.contentVP.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.contentVP.HalfViewUp()
		return m, nil
	}

	if k, ok := m.keys.navKey(msg); ok {
		m.ctrl.HandleKey(k)
		return m, m.sync()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.HandleWheel(1)
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.HandleWheel(-1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.press = &mousePress{x: msg.X, y: msg.Y, at: m.now()}
		_, _ = m.ctrl.Dispatch(slides.SwipeStart{Y: float64(msg.Y), At: m.press.at})
		return nil
	case msg.Action == tea.MouseActionRelease && m.press != nil:
		start := m.press
		m.press = nil
		_, _ = m.ctrl.Dispatch(slides.SwipeEnd{Y: float64(msg.Y), At: m.now()})
		if start.x == msg.X && start.y == msg.Y {
			m.click(msg.X, msg.Y)
		}
	default:
		return nil
	}
	return m.sync()
}

// click jumps to the slide whose indicator dot sits under the cell.
func (m *Model) click(x, y int) {
	i, ok := m.dotAt(x, y)
	if !ok {
		return
	}
	if _, err := m.ctrl.RequestGoto(i); err != nil {
		m.err = err
	}
}

// dotAt maps a screen cell to a slide dot in the nav row. Dots start after
// a one-cell margin and are separated by single spaces.
func (m *Model) dotAt(x, y int) (int, bool) {
	if !m.ready || y != m.navRow() {
		return 0, false
	}
	rel := x - navDotsOffset
	if rel < 0 || rel%2 != 0 {
		return 0, false
	}
	i := rel / 2
	if i >= m.snap.Total {
		return 0, false
	}
	return i, true
}

// navRow is the screen row of the nav bar, below the header and the body.
func (m *Model) navRow() int {
	return 1 + m.contentVP.Height
}

// sync pulls the controller state into the view and starts the entry
// animation when a transition has begun.
func (m *Model) sync() tea.Cmd {
	prev := m.snap
	m.snap = m.ctrl.Snapshot()
	if m.snap.Index != prev.Index {
		m.showSlide()
	}
	if m.snap.Transitioning && (!prev.Transitioning || m.snap.Index != prev.Index) {
		m.transitionStart = m.now()
	}
	if m.snap.Transitioning && !m.animating {
		m.animating = true
		return m.nextFrame()
	}
	return nil
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animFrameMsg(t)
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		helpOverlay := helpBoxStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.bodyView(),
		m.navView(),
		m.statusView(),
	)
}

func (m *Model) headerView() string {
	slide := m.deck.Slides.At(m.snap.Index)
	line := fmt.Sprintf("%s · %s", m.deck.Title, slideNameStyle.Render(slide.Name))
	if m.width > 0 {
		line = ansi.Truncate(line, max(m.width-2, 1), "…")
	}
	return headerStyle.Render(line)
}

// bodyView offsets the incoming slide while a transition runs; the offset
// reaches zero exactly when the controller's transition window closes.
func (m *Model) bodyView() string {
	view := m.contentVP.View()
	if !m.snap.Transitioning || m.contentVP.Height <= 0 {
		return view
	}
	offset := m.transitionOffset()
	if offset == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	shifted := append(make([]string, offset), lines...)
	if len(shifted) > len(lines) {
		shifted = shifted[:len(lines)]
	}
	return strings.Join(shifted, "\n")
}

func (m *Model) transitionOffset() int {
	window := m.ctrl.Config().TransitionWindow
	elapsed := m.now().Sub(m.transitionStart)
	if window <= 0 || elapsed >= window {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := 1 - float64(elapsed)/float64(window)
	return int(float64(m.contentVP.Height/3) * remaining)
}

func (m *Model) navView() string {
	var dots strings.Builder
	for i := 0; i < m.snap.Total; i++ {
		if i == m.snap.Index {
			dots.WriteString(dotActiveStyle.Render("●"))
		} else {
			dots.WriteString(dotInactiveStyle.Render("○"))
		}
		if i < m.snap.Total-1 {
			dots.WriteByte(' ')
		}
	}

	auto := autoPlayOffStyle.Render("⏸ manual")
	if m.snap.AutoPlay {
		auto = autoPlayOnStyle.Render("▶ auto")
	}
	counter := counterStyle.Render(fmt.Sprintf("%d / %d", m.snap.Index+1, m.snap.Total))
	percent := float64(m.snap.Index+1) / float64(m.snap.Total)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		" ", dots.String(), "  ", counter, " ", auto, " ", m.progress.ViewAs(percent),
	)
}

func (m *Model) statusView() string {
	switch {
	case m.searchActive:
		return searchBarStyle.Render(m.searchInput.View())
	case m.err != nil:
		return errorStyle.Render(m.err.Error())
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.searchQuery != "":
		return searchBarStyle.Render(m.searchStatusLine())
	case m.snap.HintVisible:
		return hintStyle.Render("↑/↓, wheel or drag to change slides · p auto-play · ? help")
	default:
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}
}

// copySlide puts the current slide's Markdown on the system clipboard.
func (m *Model) copySlide() tea.Cmd {
	slide := m.deck.Slides.At(m.snap.Index)
	if err := writeClipboard(slide.Body); err != nil {
		logging.Warn("ui", "copy slide %s failed: %v", slide.ID, err)
		return m.setStatus("Copy failed: " + err.Error())
	}
	return m.setStatus(fmt.Sprintf("Copied %q to clipboard", slide.Name))
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= chromeHeight {
		return
	}
	m.width = width
	m.height = height
	m.ready = true

	contentWidth := max(width, minContentWidth)
	m.contentVP.Width = contentWidth
	m.contentVP.Height = max(height-chromeHeight, 1)
	m.help.Width = width

	wrapWidth := max(contentWidth-m.contentVP.Style.GetHorizontalFrameSize(), 0)
	renderer, err := newRenderer(wrapWidth, m.darkTheme)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	m.rendered = make(map[int]string)
	m.showSlide()
}

func (m *Model) showSlide() {
	rendered, err := m.renderSlide(m.snap.Index)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.contentVP.SetContent(rendered)
	m.contentVP.GotoTop()
}

func (m *Model) renderSlide(i int) (string, error) {
	if m.renderer == nil {
		return "", nil
	}
	if cached, ok := m.rendered[i]; ok {
		return cached, nil
	}
	rendered, err := m.renderer.Render(m.deck.Slides.At(i).Body)
	if err != nil {
		return "", err
	}
	m.rendered[i] = rendered
	return rendered, nil
}

// replaceDeck swaps in a reloaded deck. The old controller is closed and a
// new one resumes at the same slide, clamped to the new length.
func (m *Model) replaceDeck(d *deck.Deck) error {
	prev := m.ctrl.Snapshot()
	cfg := m.ctrlCfg
	cfg.HintDuration = 0
	ctrl, err := m.newController(d.Slides, cfg, prev.Index)
	if err != nil {
		return err
	}
	m.ctrl.Close()
	m.ctrl = ctrl
	m.deck = d
	if prev.AutoPlay {
		ctrl.ToggleAutoPlay()
	}
	m.rendered = make(map[int]string)
	m.snap = ctrl.Snapshot()
	m.showSlide()
	if m.searchQuery != "" {
		m.searchMatches = findSearchMatches(d.Slides, m.searchQuery)
		m.searchIndex = -1
	}
	logging.Info("ui", "deck reloaded with %d slides", d.Slides.Len())
	return nil
}

func newRenderer(width int, dark bool) (*glamour.TermRenderer, error) {
	style := styles.TokyoNightStyle
	if !dark {
		style = styles.LightStyle
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	if m.searchQuery != "" {
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.CursorEnd()
	} else {
		m.searchInput.SetValue("")
	}
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchIndex = -1
	m.err = nil
}

func (m *Model) searchStatusLine() string {
	total := len(m.searchMatches)
	if total == 0 || m.searchIndex < 0 {
		return fmt.Sprintf("/%s (0/%d)", m.searchQuery, total)
	}
	return fmt.Sprintf("/%s (%d/%d)", m.searchQuery, m.searchIndex+1, total)
}

// performSearch collects the slides containing query and moves to the first
// match at or after the current slide.
func (m *Model) performSearch(query string) {
	m.searchQuery = query
	m.searchMatches = findSearchMatches(m.deck.Slides, query)
	if len(m.searchMatches) == 0 {
		m.searchIndex = -1
		m.err = fmt.Errorf("no slide matches %q", query)
		return
	}
	m.err = nil
	m.searchIndex = 0
	for i, idx := range m.searchMatches {
		if idx >= m.snap.Index {
			m.searchIndex = i
			break
		}
	}
	m.gotoSearchMatch()
}

func (m *Model) nextSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	m.searchIndex = (m.searchIndex + 1) % len(m.searchMatches)
	m.gotoSearchMatch()
}

func (m *Model) previousSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	if m.searchIndex <= 0 {
		m.searchIndex = len(m.searchMatches) - 1
	} else {
		m.searchIndex--
	}
	m.gotoSearchMatch()
}

func (m *Model) gotoSearchMatch() {
	if m.searchIndex < 0 || m.searchIndex >= len(m.searchMatches) {
		return
	}
	if _, err := m.ctrl.RequestGoto(m.searchMatches[m.searchIndex]); err != nil {
		m.err = err
	}
}

func findSearchMatches(set slides.SlideSet, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []int
	for i, s := range set.Slides() {
		if strings.Contains(strings.ToLower(s.Name+"\n"+s.Body), query) {
			matches = append(matches, i)
		}
	}
	return matches
}
