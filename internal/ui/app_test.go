package ui

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookbasket/internal/basket"
	"github.com/five82/bookbasket/internal/prefs"
)

func testCatalog() []basket.Item {
	return []basket.Item{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 2},
		{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Quantity: 1},
		{ID: 3, Title: "Solaris", Author: "Stanislaw Lem", Quantity: 0},
	}
}

func newTestModel(t *testing.T, opts ...basket.ReducerOption) (Model, *basket.Store) {
	t.Helper()
	initial, err := basket.NewState(testCatalog())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	store := basket.NewStore(initial, nil, opts...)
	m := New(Options{Store: store})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends a key, runs any dispatch it produced and delivers the store
// notification the program subscription would send.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	m = next.(Model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, quit := msg.(tea.QuitMsg); !quit {
				m = update(t, m, msg)
			}
		}
		m = update(t, m, newStoreChangedMsg(m.store))
	}
	return m
}

func TestNew_ReadsInitialSnapshot(t *testing.T) {
	m, _ := newTestModel(t)
	if len(m.snapshot.Catalog) != 3 {
		t.Fatalf("catalog len = %d, want 3", len(m.snapshot.Catalog))
	}
	if m.pane != PaneCatalog {
		t.Fatalf("pane = %v, want catalog", m.pane)
	}
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
}

func TestView_LoadingUntilSized(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}

func TestView_ShowsThreePanes(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"bookbasket", "Catalog (3)", "Basket (0)", "Summary", "Dune by Frank Herbert", "Your basket is empty"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}
}

func TestAddKey_DispatchesSelectedCatalogItem(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "a")

	s := store.State()
	if got, ok := s.BasketItem(1); !ok || got.Quantity != 1 {
		t.Fatalf("basket item 1 = %+v (ok=%v), want quantity 1", got, ok)
	}
	if got, _ := m.snapshot.CatalogItem(1); got.Quantity != 1 {
		t.Fatalf("model catalog quantity = %d, want 1", got.Quantity)
	}
	if !strings.Contains(m.View(), "Basket (1)") {
		t.Fatalf("View does not reflect the new basket line")
	}
}

func TestEnter_AddsInCatalogAndRemovesInBasket(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "j")
	m = press(t, m, "enter")
	if _, ok := store.State().BasketItem(2); !ok {
		t.Fatalf("enter in catalog did not add Hyperion")
	}

	m = press(t, m, "tab")
	if m.pane != PaneBasket {
		t.Fatalf("pane = %v, want basket", m.pane)
	}
	m = press(t, m, "enter")
	s := store.State()
	if len(s.Basket) != 0 {
		t.Fatalf("basket = %+v, want empty", s.Basket)
	}
	if got, _ := s.CatalogItem(2); got.Quantity != 1 {
		t.Fatalf("Hyperion stock = %d, want 1", got.Quantity)
	}
	_ = m
}

func TestRemoveKey_InCatalogPaneRemovesSelectedTitle(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "a")
	m = press(t, m, "a")
	m = press(t, m, "x")

	if got, _ := store.State().BasketItem(1); got.Quantity != 1 {
		t.Fatalf("basket quantity = %d, want 1", got.Quantity)
	}
	_ = m
}

func TestCursor_ClampsAndFollowsItem(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "G")
	if m.cursor[PaneCatalog] != 2 {
		t.Fatalf("cursor after G = %d, want 2", m.cursor[PaneCatalog])
	}
	m = press(t, m, "j")
	if m.cursor[PaneCatalog] != 2 {
		t.Fatalf("cursor moved past the end: %d", m.cursor[PaneCatalog])
	}
	m = press(t, m, "g")
	m = press(t, m, "k")
	if m.cursor[PaneCatalog] != 0 {
		t.Fatalf("cursor moved before the start: %d", m.cursor[PaneCatalog])
	}

	// Fill the basket with two titles, select the second, then remove the first.
	m = press(t, m, "a")
	m = press(t, m, "j")
	m = press(t, m, "a")
	m = press(t, m, "tab")
	m = press(t, m, "j")
	if item, _ := m.selectedItem(); item.ID != 2 {
		t.Fatalf("selected basket item = %d, want 2", item.ID)
	}
	m = press(t, m, "k")
	m = press(t, m, "d")
	m = press(t, m, "G")
	if item, ok := m.selectedItem(); !ok || item.ID != 2 {
		t.Fatalf("selected after removal = %+v (ok=%v), want item 2", item, ok)
	}
}

func TestCursor_ClampedWhenBasketEmpties(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a")
	m = press(t, m, "tab")
	m = press(t, m, "x")
	if m.cursor[PaneBasket] != 0 {
		t.Fatalf("basket cursor = %d, want 0", m.cursor[PaneBasket])
	}
	if _, ok := m.selectedItem(); ok {
		t.Fatalf("selectedItem reported a line in an empty basket")
	}
	// Nothing selected: no dispatch.
	if _, cmd := m.Update(keyMsg("x")); cmd != nil {
		t.Fatalf("remove on empty basket returned a command")
	}
}

func TestDiagnostic_ShownUntilStateChanges(t *testing.T) {
	ch := make(chan basket.Diagnostic, 4)
	m, store := newTestModel(t, basket.WithDiagnostics(func(d basket.Diagnostic) { ch <- d }))
	m.diagnostics = ch

	// Solaris is out of stock.
	m = press(t, m, "G")
	m = press(t, m, "a")

	msg := m.Init()()
	d, ok := msg.(diagnosticMsg)
	if !ok {
		t.Fatalf("Init command returned %T, want diagnosticMsg", msg)
	}
	if !errors.Is(d.Err, basket.ErrInsufficientStock) {
		t.Fatalf("diagnostic error = %v, want ErrInsufficientStock", d.Err)
	}
	m = update(t, m, msg)
	if m.status == nil {
		t.Fatalf("status not set after diagnostic")
	}
	if view := m.View(); !strings.Contains(view, "INSUFFICIENT_STOCK") {
		t.Fatalf("status line missing diagnostic kind:\n%s", view)
	}

	// A rejected action leaves the state alone and keeps the status.
	m = update(t, m, newStoreChangedMsg(store))
	if m.status == nil {
		t.Fatalf("status cleared without a state change")
	}

	m = press(t, m, "g")
	m = press(t, m, "a")
	if m.status != nil {
		t.Fatalf("status still set after a successful dispatch")
	}
	if len(store.State().Basket) != 1 {
		t.Fatalf("basket len = %d, want 1", len(store.State().Basket))
	}
}

func TestDiagnostic_StaleAfterStateChangeIsDropped(t *testing.T) {
	ch := make(chan basket.Diagnostic, 4)
	m, store := newTestModel(t, basket.WithDiagnostics(func(d basket.Diagnostic) { ch <- d }))
	m.diagnostics = ch

	// Reject Solaris, then add Dune before the diagnostic is delivered.
	m = press(t, m, "G")
	m = press(t, m, "a")
	m = press(t, m, "g")
	m = press(t, m, "a")
	if len(store.State().Basket) != 1 {
		t.Fatalf("basket len = %d, want 1", len(store.State().Basket))
	}

	stale := m.Init()()
	if _, ok := stale.(diagnosticMsg); !ok {
		t.Fatalf("Init command returned %T, want diagnosticMsg", stale)
	}
	m = update(t, m, stale)
	if m.status != nil {
		t.Fatalf("status = %v, want stale diagnostic dropped", m.status.Err)
	}

	// A rejection after the change is still shown.
	m = press(t, m, "G")
	m = press(t, m, "a")
	fresh := m.Init()()
	m = update(t, m, fresh)
	if m.status == nil {
		t.Fatalf("status not set for a rejection after the last change")
	}
}

func TestWaitForDiagnostic(t *testing.T) {
	if cmd := waitForDiagnostic(nil); cmd != nil {
		t.Fatalf("nil channel produced a command")
	}

	ch := make(chan basket.Diagnostic)
	close(ch)
	if msg := waitForDiagnostic(ch)(); msg != nil {
		t.Fatalf("closed channel produced %T", msg)
	}
}

func TestThemeCycle_SavesPrefs(t *testing.T) {
	m, _ := newTestModel(t)
	m.prefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	m = press(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath); got.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got.Theme)
	}
}

func TestQuit_SavesPaneAndQuits(t *testing.T) {
	m, _ := newTestModel(t)
	m.prefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	m = press(t, m, "tab")

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not produce QuitMsg")
	}
	if got := prefs.Load(m.prefsPath); got.Pane != prefs.PaneBasket {
		t.Fatalf("saved pane = %q, want %q", got.Pane, prefs.PaneBasket)
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not rendered")
	}

	m = press(t, m, "a")
	if m.showHelp {
		t.Fatalf("help still shown")
	}
	if len(store.State().Basket) != 0 {
		t.Fatalf("key that closed help also dispatched")
	}
}

func TestParsePane(t *testing.T) {
	if ParsePane(prefs.PaneBasket) != PaneBasket {
		t.Fatalf("ParsePane(basket) != PaneBasket")
	}
	if ParsePane("bogus") != PaneCatalog {
		t.Fatalf("ParsePane(bogus) != PaneCatalog")
	}
	if PaneBasket.String() != prefs.PaneBasket || PaneCatalog.String() != prefs.PaneCatalog {
		t.Fatalf("Pane.String does not round trip")
	}
}

func TestHistory_ReadsRejectionsFromLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bookbasket.log")
	file, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	logger := slog.New(slog.NewTextHandler(file, nil))

	m, _ := newTestModel(t, basket.WithLogger(logger))
	m.logPath = logPath

	m = press(t, m, "G")
	m = press(t, m, "a") // Solaris is out of stock

	next, cmd := m.Update(keyMsg("L"))
	m = next.(Model)
	if !m.showHistory || cmd == nil {
		t.Fatalf("L did not open the history overlay")
	}
	if !strings.Contains(m.View(), "Reading log") {
		t.Fatalf("history overlay missing loading state")
	}

	m = update(t, m, cmd())
	if len(m.history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(m.history.records))
	}
	if view := m.View(); !strings.Contains(view, "INSUFFICIENT_STOCK") {
		t.Fatalf("history overlay missing rejection:\n%s", view)
	}

	m = press(t, m, "j")
	if m.showHistory {
		t.Fatalf("history still shown after a key press")
	}
}

func TestHistory_NoLogPath(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "L")
	if !m.history.loaded || len(m.history.records) != 0 {
		t.Fatalf("history = %+v, want loaded and empty", m.history)
	}
	if !strings.Contains(m.View(), "No rejected actions logged") {
		t.Fatalf("empty history not rendered")
	}
}
