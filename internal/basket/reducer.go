package basket

// Reduce is Apply with the failure dropped. It satisfies
// state.Reducer[State, Action].
func Reduce(s State, a Action) State {
	next, _ := Apply(s, a)
	return next
}

// Apply runs one transition. On success it returns a newly built State and
// leaves s untouched. When a precondition fails it returns s itself together
// with an *ActionError. Unknown action types return s and a nil error.
func Apply(s State, a Action) (State, error) {
	switch a.Type {
	case ActionAddToBasket:
		return addToBasket(s, a)
	case ActionRemoveFromBasket:
		return removeFromBasket(s, a)
	default:
		return s, nil
	}
}

func addToBasket(s State, a Action) (State, error) {
	key, err := identify(a.Payload)
	if err != nil {
		return s, rejected(a, err)
	}
	n, err := amount(a.Payload)
	if err != nil {
		return s, rejected(a, err)
	}

	ci := key.find(s.Catalog)
	if ci < 0 {
		return s, rejected(a, ErrItemNotFound)
	}
	stock := s.Catalog[ci]
	if stock.Quantity < n {
		return s, rejected(a, ErrInsufficientStock)
	}

	var basket []Item
	if bi := indexByID(s.Basket, stock.ID); bi >= 0 {
		basket = withQuantity(s.Basket, bi, s.Basket[bi].Quantity+n)
	} else {
		entry := stock
		entry.Quantity = n
		basket = appendItem(s.Basket, entry)
	}

	return State{
		Catalog: withQuantity(s.Catalog, ci, stock.Quantity-n),
		Basket:  basket,
	}, nil
}

func removeFromBasket(s State, a Action) (State, error) {
	key, err := identify(a.Payload)
	if err != nil {
		return s, rejected(a, err)
	}
	n, err := amount(a.Payload)
	if err != nil {
		return s, rejected(a, err)
	}

	bi := key.find(s.Basket)
	if bi < 0 {
		return s, rejected(a, ErrNotInBasket)
	}
	entry := s.Basket[bi]

	// The catalog entry is credited by id alone.
	ci := indexByID(s.Catalog, entry.ID)
	if ci < 0 {
		return s, rejected(a, ErrItemNotFound)
	}

	moved := min(n, entry.Quantity)
	var basket []Item
	if entry.Quantity-moved <= 0 {
		basket = withoutIndex(s.Basket, bi)
	} else {
		basket = withQuantity(s.Basket, bi, entry.Quantity-moved)
	}

	return State{
		Catalog: withQuantity(s.Catalog, ci, s.Catalog[ci].Quantity+moved),
		Basket:  basket,
	}, nil
}

func withQuantity(items []Item, i, quantity int) []Item {
	dup := cloneItems(items)
	dup[i].Quantity = quantity
	return dup
}

func appendItem(items []Item, it Item) []Item {
	dup := make([]Item, len(items), len(items)+1)
	copy(dup, items)
	return append(dup, it)
}

func withoutIndex(items []Item, i int) []Item {
	dup := make([]Item, 0, len(items)-1)
	dup = append(dup, items[:i]...)
	return append(dup, items[i+1:]...)
}
