// Package observable holds controller state and broadcasts snapshots of it to
// subscribed views after every change.
package observable

import "sync"

// Store delivers snapshots in update order. While one goroutine is fanning
// out, updates from other goroutines return immediately and the delivering
// goroutine follows up with the latest state, so intermediate snapshots may be
// skipped but a listener always ends on the state Get returns.
type Store[S any] struct {
	mu         sync.Mutex
	state      S
	version    uint64
	delivering bool
	listeners  map[int]func(S)
	nextID     int
}

func New[S any](initial S) *Store[S] {
	return &Store[S]{
		state:     initial,
		listeners: make(map[int]func(S)),
	}
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state under the store lock and notifies listeners
// with the result. fn must not block or call back into the store; listeners
// may.
func (s *Store[S]) Update(fn func(*S)) S {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	s.publishLocked()
	return snapshot
}

// TryUpdate is Update with a veto: when fn returns false nothing changes and
// listeners are not called.
func (s *Store[S]) TryUpdate(fn func(*S) bool) (S, bool) {
	s.mu.Lock()
	next := s.state
	if !fn(&next) {
		current := s.state
		s.mu.Unlock()
		return current, false
	}
	s.state = next
	s.publishLocked()
	return next, true
}

// publishLocked is entered with mu held and returns with it released.
func (s *Store[S]) publishLocked() {
	s.version++
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for {
		snapshot, version := s.state, s.version
		listeners := s.snapshotListeners()
		s.mu.Unlock()

		for _, l := range listeners {
			l(snapshot)
		}

		s.mu.Lock()
		if s.version == version {
			s.delivering = false
			s.mu.Unlock()
			return
		}
	}
}

// Subscribe registers fn for future changes and returns a func that removes it.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store[S]) snapshotListeners() []func(S) {
	out := make([]func(S), 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}
