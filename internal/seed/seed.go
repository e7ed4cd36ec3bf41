// Package seed supplies the initial catalog: a built-in book list, or a TOML
// file with one [[books]] table per item.
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/bookbasket/internal/basket"
	"github.com/five82/bookbasket/internal/config"
)

var defaultBooks = []basket.Item{
	{ID: 1, Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Quantity: 3},
	{ID: 2, Title: "The Go Programming Language", Author: "Alan Donovan", Quantity: 2},
	{ID: 3, Title: "Structure and Interpretation of Computer Programs", Author: "Harold Abelson", Quantity: 1},
	{ID: 4, Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Quantity: 4},
	{ID: 5, Title: "Clean Code", Author: "Robert C. Martin", Quantity: 2},
	{ID: 6, Title: "Refactoring", Author: "Martin Fowler", Quantity: 0},
}

// Default returns the built-in catalog. Each call returns a fresh slice.
func Default() []basket.Item {
	dup := make([]basket.Item, len(defaultBooks))
	copy(dup, defaultBooks)
	return dup
}

type file struct {
	Books []basket.Item `toml:"books"`
}

// Load reads a catalog from path. An empty path yields Default. Unlike the
// config file, a named seed file that does not exist is an error.
func Load(path string) ([]basket.Item, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses a TOML catalog from r and trims its text fields.
func Decode(r io.Reader) ([]basket.Item, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var raw file
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	items := make([]basket.Item, 0, len(raw.Books))
	for _, b := range raw.Books {
		b.Title = strings.TrimSpace(b.Title)
		b.Author = strings.TrimSpace(b.Author)
		items = append(items, b)
	}
	return items, nil
}
