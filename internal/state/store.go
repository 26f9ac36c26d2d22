package state

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/traveljournal/internal/logging"
)

// Store owns the canonical root state. It is safe for concurrent use, but
// dispatches are applied one at a time in the order they acquire the lock.
type Store struct {
	mu        sync.Mutex
	state     RootState
	reducer   Reducer
	listeners []*listener
	nextID    uint64
	log       logging.Logger
}

type listener struct {
	id uint64
	fn func(RootState)
}

// Option configures a Store.
type Option func(*Store)

// WithReducer replaces the root reducer, e.g. to wrap Reduce with
// persistence handling.
func WithReducer(r Reducer) Option {
	return func(s *Store) {
		s.reducer = r
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store holding initial.
func NewStore(initial RootState, opts ...Option) *Store {
	s := &Store{
		state:   initial,
		reducer: Reduce,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a synchronously. When the snapshot changes, subscribers
// are called after the lock is released, so they may dispatch themselves.
// Dispatch never fails; actions no reducer knows are ignored.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, a)
	changed := Changed(prev, next)
	if changed {
		s.state = next
	}
	listeners := s.listeners
	s.mu.Unlock()

	s.log.Debug(context.Background(), "action dispatched", "type", a.Type(), "changed", changed)

	if !changed {
		return
	}
	for _, l := range listeners {
		l.fn(next)
	}
}

// State returns the current snapshot.
func (s *Store) State() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new snapshot. Listeners run in
// subscription order. When dispatches race, a listener may see snapshots
// out of order; State always returns the latest. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(RootState)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	// Copy on write: Dispatch iterates a slice taken under the lock.
	listeners := make([]*listener, len(s.listeners), len(s.listeners)+1)
	copy(listeners, s.listeners)
	s.listeners = append(listeners, &listener{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listeners := make([]*listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l.id != id {
			listeners = append(listeners, l)
		}
	}
	s.listeners = listeners
}
