package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookbasket/internal/basket"
	"github.com/five82/bookbasket/internal/logtail"
	"github.com/five82/bookbasket/internal/prefs"
)

// Pane identifies one of the two selectable lists.
type Pane int

const (
	PaneCatalog Pane = iota
	PaneBasket
	paneCount
)

// ParsePane maps a stored preference to a Pane.
func ParsePane(s string) Pane {
	if s == prefs.PaneBasket {
		return PaneBasket
	}
	return PaneCatalog
}

func (p Pane) String() string {
	if p == PaneBasket {
		return prefs.PaneBasket
	}
	return prefs.PaneCatalog
}

func (p Pane) other() Pane {
	if p == PaneBasket {
		return PaneCatalog
	}
	return PaneBasket
}

// Options configures the UI.
type Options struct {
	Store *basket.Store
	// Diagnostics carries rejected actions from the reducer. May be nil.
	Diagnostics <-chan basket.Diagnostic
	ThemeName   string
	Pane        string
	// PrefsPath is where theme and pane changes are saved. Empty disables
	// saving.
	PrefsPath string
	// LogPath is the application log, read for the rejection history.
	LogPath string
	Logger  *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store       *basket.Store
	diagnostics <-chan basket.Diagnostic
	prefsPath   string
	logPath     string
	logger      *slog.Logger
	keys        keyMap
	help        help.Model

	// UI state
	theme       Theme
	pane        Pane
	width       int
	height      int
	ready       bool
	showHelp    bool
	showHistory bool

	// Data state
	snapshot   basket.State
	lastChange time.Time
	cursor     [paneCount]int
	status     *basket.Diagnostic
	history    historyMsg
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := Model{
		store:       opts.Store,
		diagnostics: opts.Diagnostics,
		prefsPath:   opts.PrefsPath,
		logPath:     opts.LogPath,
		logger:      logger,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       GetTheme(opts.ThemeName),
		pane:        ParsePane(opts.Pane),
	}
	if m.store != nil {
		m.snapshot = m.store.State()
	}
	m.applyHelpStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForDiagnostic(m.diagnostics)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case storeChangedMsg:
		m.refresh(msg.state, msg.at)
		return m, nil

	case diagnosticMsg:
		// Diagnostics travel on their own channel, so one can arrive after
		// the notification of a later change. That one is already stale.
		d := basket.Diagnostic(msg)
		if !d.At.Before(m.lastChange) {
			m.status = &d
		}
		return m, waitForDiagnostic(m.diagnostics)

	case historyMsg:
		m.history = msg
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showHistory {
		return m.renderHistory()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes an overlay
	if m.showHelp || m.showHistory {
		m.showHelp = false
		m.showHistory = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.History):
		m.showHistory = true
		m.history = historyMsg{}
		return m, loadHistoryCmd(m.logPath)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyHelpStyles()
		m.savePrefs()

	case key.Matches(msg, m.keys.Tab):
		m.pane = m.pane.other()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Top):
		m.cursor[m.pane] = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.pane] = max(len(m.items(m.pane))-1, 0)

	case key.Matches(msg, m.keys.Add):
		return m, m.dispatchSelected(basket.AddToBasket)

	case key.Matches(msg, m.keys.Remove):
		return m, m.dispatchSelected(basket.RemoveFromBasket)

	case key.Matches(msg, m.keys.Confirm):
		if m.pane == PaneCatalog {
			return m, m.dispatchSelected(basket.AddToBasket)
		}
		return m, m.dispatchSelected(basket.RemoveFromBasket)
	}

	return m, nil
}

// refresh moves to the snapshot a dispatch produced at the given time. A
// transition that changed the state clears the last diagnostic; rejected
// actions leave the state, and the status, as is.
func (m *Model) refresh(next basket.State, at time.Time) {
	if !sameItems(m.snapshot.Catalog, next.Catalog) || !sameItems(m.snapshot.Basket, next.Basket) {
		m.status = nil
		m.lastChange = at
	}

	// Keep each cursor on the same item when it is still listed.
	for p := PaneCatalog; p < paneCount; p++ {
		id, ok := selectedID(m.items(p), m.cursor[p])
		m.cursor[p] = reselect(itemsOf(next, p), id, ok, m.cursor[p])
	}
	m.snapshot = next
}

func (m Model) items(p Pane) []basket.Item {
	return itemsOf(m.snapshot, p)
}

func itemsOf(s basket.State, p Pane) []basket.Item {
	if p == PaneBasket {
		return s.Basket
	}
	return s.Catalog
}

func (m *Model) moveCursor(delta int) {
	n := len(m.items(m.pane))
	if n == 0 {
		m.cursor[m.pane] = 0
		return
	}
	m.cursor[m.pane] = min(max(m.cursor[m.pane]+delta, 0), n-1)
}

func (m Model) selectedItem() (basket.Item, bool) {
	items := m.items(m.pane)
	i := m.cursor[m.pane]
	if i < 0 || i >= len(items) {
		return basket.Item{}, false
	}
	return items[i], true
}

func (m Model) dispatchSelected(build func(basket.Item) basket.Action) tea.Cmd {
	item, ok := m.selectedItem()
	if !ok || m.store == nil {
		return nil
	}
	return dispatchCmd(m.store, build(item))
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Pane: m.pane.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

func (m *Model) applyHelpStyles() {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.help.Styles.Ellipsis = styles.FaintText
}

func sameItems(a, b []basket.Item) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func selectedID(items []basket.Item, i int) (basket.ItemID, bool) {
	if i < 0 || i >= len(items) {
		return 0, false
	}
	return items[i].ID, true
}

func reselect(items []basket.Item, id basket.ItemID, hadSelection bool, fallback int) int {
	if hadSelection {
		for i, it := range items {
			if it.ID == id {
				return i
			}
		}
	}
	if len(items) == 0 {
		return 0
	}
	return min(max(fallback, 0), len(items)-1)
}

// Messages

// storeChangedMsg is sent by the store subscription after every dispatch. It
// carries the state that dispatch produced and when its listeners ran.
type storeChangedMsg struct {
	state basket.State
	at    time.Time
}

// newStoreChangedMsg must be called from a store listener, where State is the
// result of the dispatch being announced.
func newStoreChangedMsg(store *basket.Store) storeChangedMsg {
	return storeChangedMsg{state: store.State(), at: time.Now()}
}

type diagnosticMsg basket.Diagnostic

type historyMsg struct {
	records []logtail.Record
	err     error
	loaded  bool
}

// Commands

// dispatchCmd runs the dispatch off the event loop: listeners forward into
// the program with Send, which blocks until Update is free.
func dispatchCmd(store *basket.Store, a basket.Action) tea.Cmd {
	return func() tea.Msg {
		store.Dispatch(a)
		return nil
	}
}

func waitForDiagnostic(ch <-chan basket.Diagnostic) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return diagnosticMsg(d)
	}
}

func loadHistoryCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return historyMsg{loaded: true}
		}
		records, err := logtail.Rejections(path, historyScan)
		return historyMsg{records: records, err: err, loaded: true}
	}
}

// historyScan bounds how many log lines the history overlay scans.
const historyScan = 2000

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("ui: store is required")
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	sub := opts.Store.Subscribe(func() {
		p.Send(newStoreChangedMsg(opts.Store))
	})
	defer sub.Unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
