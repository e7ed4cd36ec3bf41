package basket

import "github.com/five82/bookbasket/internal/state"

// Store is the state container the application runs on.
type Store = state.Store[State, Action]

// NewStore builds a Store over initial using NewReducer(opts...).
func NewStore(initial State, storeOpts []state.Option, opts ...ReducerOption) *Store {
	return state.NewStore(NewReducer(opts...), initial, storeOpts...)
}
