package basket

import (
	"errors"
	"fmt"
)

// Transition failures. The reducer never returns these to the store; they are
// reported through Apply and the diagnostics callback.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrNotInBasket       = fmt.Errorf("%w in basket", ErrItemNotFound)
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrMissingIdentity   = errors.New("action payload has no id and no title/author")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
)

// State validation failures.
var (
	ErrInvalidItem  = errors.New("invalid item")
	ErrDuplicateID  = errors.New("duplicate item id")
	ErrNotConserved = errors.New("quantity not conserved")
)

// ActionError ties a transition failure to the action that caused it.
type ActionError struct {
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	p := e.Action.Payload
	if p.ID != 0 {
		return fmt.Sprintf("%s id=%d: %v", e.Action.Type, p.ID, e.Err)
	}
	return fmt.Sprintf("%s %q by %q: %v", e.Action.Type, p.Title, p.Author, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func rejected(a Action, err error) error {
	return &ActionError{Action: a, Err: err}
}
