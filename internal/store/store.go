// internal/store/store.go
// Package store provides the experiment state container: a minimal
// dispatch/subscribe store holding the most recently received trial record.
package store

import (
	"sync"

	"github.com/mwiater/trialscope/internal/trial"
)

// ActionUpdate is the only action kind the store reduces. Other kinds are
// silently ignored so newer producers can emit actions older consumers do
// not understand yet.
const ActionUpdate = "update"

// Action is one in-process message delivered to the store.
type Action struct {
	Kind string             `json:"kind"`
	Data *trial.TrialRecord `json:"data,omitempty"`
}

// State is the store's entire contents: only the latest record is retained.
// History accumulation belongs to the chart component, not the store.
type State struct {
	LatestTrial *trial.TrialRecord
}

// Listener receives the new state after each recognized dispatch.
type Listener func(State)

// Store is an explicit state-container object. Create one with New, pass it
// to whichever components need it, and Close it on teardown.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]Listener
	nextID int
	closed bool
}

// New returns an empty store ready for dispatch and subscription.
func New() *Store {
	return &Store{subs: make(map[int]Listener)}
}

// Dispatch reduces one action. Recognized actions replace the state and
// notify every subscriber synchronously, in dispatch order, before Dispatch
// returns. Unrecognized kinds and dispatches after Close are no-ops.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	if s.closed || a.Kind != ActionUpdate {
		s.mu.Unlock()
		return
	}
	s.state = State{LatestTrial: a.Data}
	state := s.state
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Subscribe registers a listener and returns its unsubscribe function. The
// unsubscribe function is idempotent. Subscribing to a closed store returns
// a no-op unsubscribe and the listener is never called.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close drops all subscribers and makes further dispatches no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[int]Listener)
}
