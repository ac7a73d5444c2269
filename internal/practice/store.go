package practice

import "sync"

// Store owns the State for one practice session. Exactly one Store exists
// per active session; it is created at session start and discarded (or
// Reset) at session end.
//
// The reducer itself is pure and single-threaded; the mutex exists only
// because dispatches can arrive from the asynchronous continuations of the
// two network operations (fetch and completion signal). There is no
// parallel mutation beyond that interleaving.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a Store holding the initial empty state.
func NewStore() *Store {
	return &Store{state: Initial()}
}

// Dispatch applies an action and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// State returns a snapshot of the current state. The snapshot's log slice
// is shared but append-only, so readers may range over it freely.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
