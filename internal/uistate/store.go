// Package uistate holds ephemeral, device-local screen state such as selected filters and
// upload progress flags. Nothing here is persisted, sent to the server, or touched by
// server responses.
package uistate

import "sync"

// Store holds one state value and restores it to its declared defaults on Reset.
type Store[S any] struct {
	defaults func() S

	mu    sync.Mutex
	state S
	subs  map[int]func(S)
	next  int
}

// NewStore creates a Store initialised from defaults. defaults is called again on every
// Reset, so it must return a fresh value each time.
func NewStore[S any](defaults func() S) *Store[S] {
	return &Store[S]{
		defaults: defaults,
		state:    defaults(),
		subs:     make(map[int]func(S)),
	}
}

// Get returns a copy of the current state.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state and notifies subscribers with the result.
func (s *Store[S]) Update(fn func(*S)) {
	s.mu.Lock()
	fn(&s.state)
	s.publishLocked()
}

// Reset restores the declared defaults and notifies subscribers.
func (s *Store[S]) Reset() {
	s.mu.Lock()
	s.state = s.defaults()
	s.publishLocked()
}

// Subscribe registers fn to be called after every change. Calls happen on the goroutine
// making the change, outside the store's lock.
func (s *Store[S]) Subscribe(fn func(S)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// publishLocked unlocks s.mu before calling subscribers.
func (s *Store[S]) publishLocked() {
	state := s.state
	fns := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
