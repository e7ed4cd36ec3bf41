// Package ui provides the terminal user interface for bookbasket.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program rendering three views of a single
// basket.State snapshot:
//
//   - Catalog: every book with its remaining stock
//   - Basket: the books picked so far with their quantities
//   - Summary: distinct titles, units in the basket and units left in stock
//
// The model never mutates state. Key presses build basket actions from the
// selected line and dispatch them to the store from a tea.Cmd, off the event
// loop. The store subscription registered by Run forwards every completed
// dispatch into the program as a message carrying the state it produced.
//
// # Package Structure
//
//   - app.go: Model, Update/View, messages, commands and Run
//   - panes.go: catalog, basket and summary panes with titled borders
//   - header.go: header totals, diagnostic status line and command bar
//   - help.go: full key help overlay
//   - history.go: rejected actions read back from the log file (logtail)
//   - keys.go: key bindings (bubbles/key), rendered with bubbles/help
//   - theme.go: color themes and Lipgloss styles
//
// # Diagnostics
//
// Rejected actions arrive on Options.Diagnostics. The most recent one stays in
// the status line until a dispatch actually changes the state. The L key
// opens a history of every rejection the reducer logged, read from the tail of
// the application log.
//
// # Key Bindings
//
//   - j/k, g/G: move the cursor
//   - tab: switch between catalog and basket
//   - a, enter (catalog): add one copy of the selected book
//   - x/d, enter (basket): return one copy of the selected book
//   - L: rejection history
//   - T: cycle theme (saved to preferences)
//   - ?: toggle help
//   - q, ctrl+c: quit (saves the focused pane)
package ui
