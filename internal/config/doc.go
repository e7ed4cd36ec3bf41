// Package config loads the bookbasket configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookbasket/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/bookbasket/config.toml
//   - Seed catalog: built-in book list
//   - Log file: ~/.local/state/bookbasket/bookbasket.log
//   - Log level: info
//   - Trace export: disabled
//
// # TOML Format
//
//	seed_path = "~/books/catalog.toml"
//	log_path = "~/.local/state/bookbasket/bookbasket.log"
//	log_level = "debug"            # debug, info, warn, error
//	otlp_endpoint = "localhost:4318"
//
// Paths go through ExpandPath: a leading ~ becomes the home directory and the
// result is made absolute. An unreadable file or malformed TOML is an error;
// a missing file is not.
package config
