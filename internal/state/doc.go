// Package state provides a generic reducer-driven state container.
//
// # Overview
//
// A Store holds one value of type S. The only way to change it is to dispatch
// an action of type A; the store runs its Reducer over (current, action), keeps
// the result and then notifies every subscriber. Subscribers read the new
// value with State.
//
//	Caller                     Store                       Subscribers
//	┌──────────────┐          ┌───────────────────┐        ┌─────────────┐
//	│ Dispatch(a)  │─────────→│ next = reduce(s,a)│        │             │
//	│              │          │ state = next      │───────→│ L1()        │
//	│              │          │ notify in order   │───────→│ L2()        │
//	└──────────────┘          └───────────────────┘        │  State()    │
//	                                                       └─────────────┘
//
// # Core Types
//
// Store:
//   - Constructed with NewStore and owned by whoever created it
//   - Dispatch, State, Subscribe
//
// Reducer:
//   - func(S, A) S, expected to be pure and to build new values instead of
//     mutating the state it was given
//
// Subscription:
//   - Handle returned by Subscribe; Unsubscribe removes that one registration
//
// # Dispatch Semantics
//
// Dispatch always runs to completion: reduce, store, notify. Listeners run
// synchronously in registration order and are called even when the reducer
// returned the state it was given. Registering the same listener twice calls
// it twice.
//
// A panicking reducer is recovered; the state stays as it was and the
// recovered value goes to the handler installed with WithPanicHandler.
//
// # Concurrency Model
//
// One mutex guards the state, the listener list and a FIFO of pending
// actions. The goroutine whose Dispatch finds the store idle becomes the
// drainer and applies queued actions one at a time, running the full listener
// fan-out for each before taking the next. Other callers enqueue:
//
//   - A Dispatch made while the fan-out is running, as one from a listener
//     is, returns straight away and its action runs after the current fan-out
//     finishes. Waiting there would deadlock a listener.
//   - Any other Dispatch waits until its own action has been applied and its
//     listeners have run, so State reflects it on return.
//
// Dispatches from several goroutines are serialized in arrival order.
//
// If a listener panics, the panic reaches the drainer's caller and a fresh
// goroutine takes over whatever is still queued.
//
// The lock is never held while the reducer or a listener runs, so listeners
// may call State, Subscribe and Unsubscribe freely. The listener slice is
// replaced on every change, which lets a fan-out in progress keep iterating
// over the set that was registered when it started.
//
// # Usage Example
//
//	store := state.NewStore(basket.Reduce, initial)
//	sub := store.Subscribe(func() {
//		render(store.State())
//	})
//	defer sub.Unsubscribe()
//
//	store.Dispatch(basket.AddToBasket(item))
package state
