package state

import (
	"sync"
)

// Reducer computes the next state from the current state and an action. It
// must not mutate its arguments.
type Reducer[S, A any] func(S, A) S

// Listener is notified, without arguments, after every completed dispatch.
type Listener func()

// Option configures a Store.
type Option func(*options)

type options struct {
	onPanic func(recovered any)
}

// WithPanicHandler registers fn to receive the value recovered from a
// panicking reducer. The dispatch that panicked leaves the state unchanged.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(o *options) {
		o.onPanic = fn
	}
}

// Store holds the current state, applies the reducer on each dispatched action
// and notifies subscribers synchronously after each transition.
type Store[S, A any] struct {
	reducer Reducer[S, A]
	opts    options

	mu         sync.Mutex
	state      S
	listeners  []subscriber
	nextID     uint64
	queue      []pending[A]
	draining   bool
	fanningOut bool
}

// pending is a queued action. done, when set, is closed once the action's
// listeners have run.
type pending[A any] struct {
	action A
	done   chan struct{}
}

type subscriber struct {
	id uint64
	fn Listener
}

// NewStore constructs a Store that starts at initial and transitions with reducer.
func NewStore[S, A any](reducer Reducer[S, A], initial S, opts ...Option) *Store[S, A] {
	s := &Store[S, A]{
		reducer: reducer,
		state:   initial,
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// State returns the current snapshot.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len reports the number of live subscriptions.
func (s *Store[S, A]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Subscribe registers l to run after every dispatch. Listeners run in
// registration order and registering the same function twice runs it twice.
func (s *Store[S, A]) Subscribe(l Listener) Subscription {
	if l == nil {
		return Subscription{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	// Copy on write so a fan-out in progress keeps its own slice.
	next := make([]subscriber, len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, subscriber{id: id, fn: l})

	var once sync.Once
	return Subscription{unsubscribe: func() {
		once.Do(func() { s.remove(id) })
	}}
}

func (s *Store[S, A]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]subscriber, 0, len(s.listeners))
	for _, sub := range s.listeners {
		if sub.id != id {
			next = append(next, sub)
		}
	}
	s.listeners = next
}

// Dispatch applies the reducer to the current state and action, stores the
// result and then calls every listener before returning.
//
// A Dispatch issued while another one is reducing is queued, applied by the
// in-flight call and only returns once its own listeners have run. A Dispatch
// issued while listeners are running, as a re-entrant one from a listener
// always is, is queued and returns at once; its action is applied after the
// current fan-out. Actions are applied in the order they were issued.
func (s *Store[S, A]) Dispatch(action A) {
	s.mu.Lock()
	if s.draining {
		if s.fanningOut {
			s.queue = append(s.queue, pending[A]{action: action})
			s.mu.Unlock()
			return
		}
		done := make(chan struct{})
		s.queue = append(s.queue, pending[A]{action: action, done: done})
		s.mu.Unlock()
		<-done
		return
	}
	s.queue = append(s.queue, pending[A]{action: action})
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

// drain applies queued actions until the queue is empty. The caller must have
// set draining.
func (s *Store[S, A]) drain() {
	var current chan struct{}
	finished := false
	defer func() {
		if finished {
			return
		}
		// A listener panicked. Release the caller waiting on the action that
		// was fanning out and hand the rest of the queue to a new drainer.
		if current != nil {
			close(current)
		}
		s.mu.Lock()
		s.fanningOut = false
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		go s.drain()
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			finished = true
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue[0] = pending[A]{}
		s.queue = s.queue[1:]
		prev := s.state
		s.mu.Unlock()

		current = next.done
		updated := s.reduce(prev, next.action)

		s.mu.Lock()
		s.state = updated
		listeners := s.listeners
		s.fanningOut = len(listeners) > 0
		s.mu.Unlock()

		for _, sub := range listeners {
			sub.fn()
		}

		s.mu.Lock()
		s.fanningOut = false
		s.mu.Unlock()
		if current != nil {
			close(current)
			current = nil
		}
	}
}

func (s *Store[S, A]) reduce(prev S, action A) (next S) {
	defer func() {
		if r := recover(); r != nil {
			next = prev
			if s.opts.onPanic != nil {
				s.opts.onPanic(r)
			}
		}
	}()
	return s.reducer(prev, action)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	unsubscribe func()
}

// Unsubscribe removes the registration. Calling it more than once is a no-op,
// as is calling it on the zero Subscription.
func (s Subscription) Unsubscribe() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
