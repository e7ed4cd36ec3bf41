package basket

import (
	"fmt"
	"strings"
)

// NewState builds the initial state from a seed catalog: the catalog is a copy
// of seed and the basket is empty. Every seed item needs a positive, unique id,
// a title and a non-negative quantity.
func NewState(seed []Item) (State, error) {
	if err := validateCatalog(seed); err != nil {
		return State{}, err
	}
	catalog := cloneItems(seed)
	if catalog == nil {
		catalog = []Item{}
	}
	return State{Catalog: catalog, Basket: []Item{}}, nil
}

// Validate checks the structural invariants of s: unique ids and no negative
// quantity on either side, and every basket line has at least one unit and a
// matching catalog entry.
func (s State) Validate() error {
	if err := validateCatalog(s.Catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	seen := make(map[ItemID]struct{}, len(s.Basket))
	for _, it := range s.Basket {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("basket: item %d: %w", it.ID, ErrDuplicateID)
		}
		seen[it.ID] = struct{}{}
		if it.Quantity <= 0 {
			return fmt.Errorf("basket: item %d: quantity %d: %w", it.ID, it.Quantity, ErrInvalidItem)
		}
		if indexByID(s.Catalog, it.ID) < 0 {
			return fmt.Errorf("basket: item %d: %w", it.ID, ErrItemNotFound)
		}
	}
	return nil
}

// Totals returns catalog plus basket units per id.
func (s State) Totals() map[ItemID]int {
	totals := make(map[ItemID]int, len(s.Catalog))
	for _, it := range s.Catalog {
		totals[it.ID] += it.Quantity
	}
	for _, it := range s.Basket {
		totals[it.ID] += it.Quantity
	}
	return totals
}

// Conserved reports whether every id in s holds the same total number of
// units as it did in initial.
func Conserved(initial, s State) error {
	want := initial.Totals()
	got := s.Totals()
	for id, n := range want {
		if got[id] != n {
			return fmt.Errorf("item %d: have %d units, want %d: %w", id, got[id], n, ErrNotConserved)
		}
	}
	for id, n := range got {
		if _, ok := want[id]; !ok {
			return fmt.Errorf("item %d: %d units appeared: %w", id, n, ErrNotConserved)
		}
	}
	return nil
}

func validateCatalog(items []Item) error {
	seen := make(map[ItemID]struct{}, len(items))
	for i, it := range items {
		switch {
		case it.ID <= 0:
			return fmt.Errorf("item #%d: id %d must be positive: %w", i, it.ID, ErrInvalidItem)
		case strings.TrimSpace(it.Title) == "":
			return fmt.Errorf("item %d: title is empty: %w", it.ID, ErrInvalidItem)
		case it.Quantity < 0:
			return fmt.Errorf("item %d: quantity %d: %w", it.ID, it.Quantity, ErrInvalidItem)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("item %d: %w", it.ID, ErrDuplicateID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
