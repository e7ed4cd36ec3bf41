// Package app is the composition root for bookbasket.
//
// # Overview
//
// Run wires configuration, preferences, the seed catalog, logging, telemetry,
// the basket store and the UI, then blocks until the TUI exits.
//
// # Startup Sequence
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/bookbasket/config.toml
//	       ├─────> prefs.Load()         Theme and focused pane
//	       ├─────> openLog()            slog text handler on log_path
//	       ├─────> telemetry.Setup()    OTLP trace export when configured
//	       ├─────> seed.Load()          -seed flag, else seed_path, else built-in
//	       ├─────> newStore()           basket.NewState + reducer + relay
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Diagnostics
//
// The reducer reports rejected actions synchronously from inside Dispatch.
// A diagnosticRelay moves them onto a buffered channel that the UI drains,
// so a slow renderer can never stall a dispatch. Diagnostics that do not fit
// are counted and reported when the program stops; every one of them is
// also in the log.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Unreadable or malformed config file
//   - A named seed file that is missing or invalid
//   - Log file that cannot be created
//
// Preferences never fail startup; a broken prefs file falls back to defaults.
// At exit the final state is checked for stock conservation against the seed
// and any violation is logged.
package app
