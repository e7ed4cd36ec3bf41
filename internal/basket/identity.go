package basket

// identity is the key an action payload resolves to. Payloads carrying an id
// match by id only; payloads without one fall back to the (title, author)
// pair.
type identity struct {
	id     ItemID
	title  string
	author string
}

func identify(p Item) (identity, error) {
	if p.ID != 0 {
		return identity{id: p.ID}, nil
	}
	if p.Title == "" || p.Author == "" {
		return identity{}, ErrMissingIdentity
	}
	return identity{title: p.Title, author: p.Author}, nil
}

func (k identity) matches(it Item) bool {
	if k.id != 0 {
		return it.ID == k.id
	}
	return it.Title == k.title && it.Author == k.author
}

// find is a linear scan; catalogs are small.
func (k identity) find(items []Item) int {
	for i, it := range items {
		if k.matches(it) {
			return i
		}
	}
	return -1
}

// amount is the number of units an action moves.
func amount(p Item) (int, error) {
	switch {
	case p.Quantity < 0:
		return 0, ErrInvalidQuantity
	case p.Quantity == 0:
		return 1, nil
	default:
		return p.Quantity, nil
	}
}
