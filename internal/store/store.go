// Package store is the single source of truth for client state: every slice
// lives in one State tree, changes only through dispatched actions, and is
// fanned out to subscribers after each change.
package store

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Listener receives the state produced by a dispatch.
type Listener func(State)

// Store holds the State tree.
type Store struct {
	mu        sync.Mutex
	state     State
	seq       uint64
	listeners map[int]Listener
	nextID    int
	log       logrus.FieldLogger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger traces dispatched actions at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithState seeds the initial state. Meant for tests and previews.
func WithState(st State) Option {
	return func(s *Store) { s.state = st }
}

// New creates a store with every slice empty and the session unauthenticated.
func New(opts ...Option) *Store {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	s := &Store{
		listeners: make(map[int]Listener),
		log:       silent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a to the state and notifies every subscriber with the
// resulting snapshot before returning.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	st := s.applyLocked(a)
	ls := s.listenersLocked()
	s.mu.Unlock()

	s.notify(ls, st)
}

// DispatchIn applies a only if the state is still at epoch, that is, nobody
// signed out or reset user data since epoch was read. It reports whether a
// was applied; a dropped action notifies nobody.
func (s *Store) DispatchIn(epoch uint64, a Action) bool {
	s.mu.Lock()
	if s.state.Epoch != epoch {
		s.mu.Unlock()
		s.log.WithField("action", fmt.Sprintf("%T", a)).Debug("dropped action from a previous session")
		return false
	}
	st := s.applyLocked(a)
	ls := s.listenersLocked()
	s.mu.Unlock()

	s.notify(ls, st)
	return true
}

// Epoch returns the current identity epoch. Pass it to DispatchIn when the
// work it guards finishes.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Epoch
}

// Begin issues a new fetch for domain d: it allocates the next sequence
// number and dispatches Request for it atomically.
func (s *Store) Begin(d Domain) Ticket {
	s.mu.Lock()
	s.seq++
	t := Ticket{Domain: d, Seq: s.seq}
	st := s.applyLocked(Request{Ticket: t})
	ls := s.listenersLocked()
	s.mu.Unlock()

	s.notify(ls, st)
	return t
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select reads one value out of the current state.
func Select[T any](s *Store, sel func(State) T) T {
	return sel(s.State())
}

// Subscribe registers l for every future dispatch and returns a function
// that removes it. Listeners run on the dispatching goroutine and must not
// block; they may call State and Dispatch.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) applyLocked(a Action) State {
	s.state = s.state.reduce(a)
	s.state.Revision++
	s.log.WithFields(logrus.Fields{
		"action":   fmt.Sprintf("%T", a),
		"revision": s.state.Revision,
	}).Debug("dispatch")
	return s.state
}

func (s *Store) listenersLocked() []Listener {
	ls := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			ls = append(ls, l)
		}
	}
	return ls
}

func (s *Store) notify(ls []Listener, st State) {
	for _, l := range ls {
		l(st)
	}
}
