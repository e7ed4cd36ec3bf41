package basket

import (
	"errors"
	"testing"
)

func TestNewState_CopiesSeed(t *testing.T) {
	seed := []Item{bookA}
	s, err := NewState(seed)
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	seed[0].Quantity = 100
	if s.Catalog[0].Quantity != 2 {
		t.Fatalf("catalog shares the seed slice")
	}
	if s.Basket == nil || len(s.Basket) != 0 {
		t.Fatalf("Basket = %#v, want empty non-nil", s.Basket)
	}
}

func TestNewState_EmptySeed(t *testing.T) {
	s, err := NewState(nil)
	if err != nil {
		t.Fatalf("NewState(nil) returned error: %v", err)
	}
	if s.Catalog == nil || len(s.Catalog) != 0 {
		t.Fatalf("Catalog = %#v, want empty non-nil", s.Catalog)
	}
}

func TestNewState_RejectsBadSeed(t *testing.T) {
	tests := []struct {
		name string
		seed []Item
		want error
	}{
		{"zero id", []Item{{ID: 0, Title: "A", Quantity: 1}}, ErrInvalidItem},
		{"negative id", []Item{{ID: -3, Title: "A", Quantity: 1}}, ErrInvalidItem},
		{"blank title", []Item{{ID: 1, Title: "  ", Quantity: 1}}, ErrInvalidItem},
		{"negative quantity", []Item{{ID: 1, Title: "A", Quantity: -1}}, ErrInvalidItem},
		{"duplicate id", []Item{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}}, ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewState(tt.seed); !errors.Is(err, tt.want) {
				t.Fatalf("NewState err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	good := State{Catalog: []Item{withQty(bookA, 0)}, Basket: []Item{withQty(bookA, 2)}}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate(good) = %v, want nil", err)
	}

	tests := []struct {
		name  string
		state State
		want  error
	}{
		{"negative catalog", State{Catalog: []Item{withQty(bookA, -1)}}, ErrInvalidItem},
		{"zero basket line", State{Catalog: []Item{bookA}, Basket: []Item{withQty(bookA, 0)}}, ErrInvalidItem},
		{"duplicate basket line", State{Catalog: []Item{bookA}, Basket: []Item{withQty(bookA, 1), withQty(bookA, 1)}}, ErrDuplicateID},
		{"orphan basket line", State{Catalog: []Item{}, Basket: []Item{withQty(bookA, 1)}}, ErrItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.state.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConserved(t *testing.T) {
	initial := State{Catalog: []Item{bookA}, Basket: []Item{}}
	moved := State{Catalog: []Item{withQty(bookA, 0)}, Basket: []Item{withQty(bookA, 2)}}
	if err := Conserved(initial, moved); err != nil {
		t.Fatalf("Conserved = %v, want nil", err)
	}

	lost := State{Catalog: []Item{withQty(bookA, 0)}, Basket: []Item{withQty(bookA, 1)}}
	if err := Conserved(initial, lost); !errors.Is(err, ErrNotConserved) {
		t.Fatalf("Conserved(lost) = %v, want ErrNotConserved", err)
	}

	extra := State{Catalog: []Item{bookA, {ID: 9, Title: "Z", Quantity: 1}}}
	if err := Conserved(initial, extra); !errors.Is(err, ErrNotConserved) {
		t.Fatalf("Conserved(extra) = %v, want ErrNotConserved", err)
	}
}

func TestSummarize(t *testing.T) {
	s := State{
		Catalog: []Item{withQty(bookA, 1), {ID: 2, Title: "B", Author: "Y", Quantity: 3}},
		Basket:  []Item{withQty(bookA, 1), {ID: 2, Title: "B", Author: "Y", Quantity: 2}},
	}
	sum := Summarize(s)
	if sum.Titles != 2 || sum.Units != 3 || sum.InStock != 4 {
		t.Fatalf("Summarize = %+v, want Titles=2 Units=3 InStock=4", sum)
	}
	if sum.Empty() {
		t.Fatalf("Empty() = true, want false")
	}

	sum.Lines[0].Quantity = 50
	if s.Basket[0].Quantity != 1 {
		t.Fatalf("summary lines share the basket slice")
	}

	if !Summarize(State{}).Empty() {
		t.Fatalf("Empty() = false for empty state")
	}
}
