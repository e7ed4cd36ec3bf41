package basket

// Summary is the dashboard view of a basket.
type Summary struct {
	Titles  int // distinct items in the basket
	Units   int // units in the basket
	InStock int // units left in the catalog
	Lines   []Item
}

// Empty reports whether the basket holds nothing.
func (s Summary) Empty() bool {
	return s.Units == 0
}

// Summarize derives the basket summary from s.
func Summarize(s State) Summary {
	sum := Summary{
		Titles: len(s.Basket),
		Lines:  cloneItems(s.Basket),
	}
	for _, it := range s.Basket {
		sum.Units += it.Quantity
	}
	for _, it := range s.Catalog {
		sum.InStock += it.Quantity
	}
	return sum
}
