package basket

// ItemID identifies an item in the catalog. The zero value means "no id".
type ItemID int64

// Item is one catalog or basket line.
type Item struct {
	ID       ItemID `toml:"id"`
	Title    string `toml:"title"`
	Author   string `toml:"author"`
	Quantity int    `toml:"quantity"`
}

// State is the full value held by the store. Catalog is the supplier side,
// Basket the customer side. A State is treated as immutable once published:
// transitions build new slices instead of writing into these.
type State struct {
	Catalog []Item
	Basket  []Item
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Catalog: cloneItems(s.Catalog),
		Basket:  cloneItems(s.Basket),
	}
}

// CatalogItem returns the catalog entry with the given id.
func (s State) CatalogItem(id ItemID) (Item, bool) {
	if i := indexByID(s.Catalog, id); i >= 0 {
		return s.Catalog[i], true
	}
	return Item{}, false
}

// BasketItem returns the basket entry with the given id.
func (s State) BasketItem(id ItemID) (Item, bool) {
	if i := indexByID(s.Basket, id); i >= 0 {
		return s.Basket[i], true
	}
	return Item{}, false
}

// ActionType tags an Action.
type ActionType string

const (
	ActionAddToBasket      ActionType = "book/addBookToBasket"
	ActionRemoveFromBasket ActionType = "book/removeBookFromBasket"
)

// Known reports whether the reducer has a transition for t.
func (t ActionType) Known() bool {
	switch t {
	case ActionAddToBasket, ActionRemoveFromBasket:
		return true
	}
	return false
}

// Action is a request to transition the state. Payload describes the target
// item; Payload.Quantity is the number of units to move (zero means one).
type Action struct {
	Type    ActionType
	Payload Item
}

// AddToBasket builds an action moving one unit of item from the catalog into
// the basket.
func AddToBasket(item Item) Action {
	return Action{Type: ActionAddToBasket, Payload: unitPayload(item)}
}

// RemoveFromBasket builds an action returning one unit of item from the
// basket to the catalog.
func RemoveFromBasket(item Item) Action {
	return Action{Type: ActionRemoveFromBasket, Payload: unitPayload(item)}
}

func unitPayload(item Item) Item {
	item.Quantity = 1
	return item
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

func indexByID(items []Item, id ItemID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
