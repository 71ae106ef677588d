package view

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

// Kind identifies one server collection mirrored client-side.
type Kind string

const (
	KindPlayers    Kind = "players"
	KindTeams      Kind = "teams"
	KindRoster     Kind = "roster"
	KindLivePlayer Kind = "live_player"
	KindStatus     Kind = "auction_status"
	KindStats      Kind = "dashboard_stats"
	KindAnalytics  Kind = "viewer_analytics"
	KindChat       Kind = "chat_messages"
	KindWishlist   Kind = "wishlist"
	KindBidHistory Kind = "bid_history"
)

// Store holds the last-known copy of each server collection. Writes are
// wholesale replacements, never partial merges; readers always observe
// a complete snapshot.
//
// Every fetch claims a generation before it is issued and presents it
// with the result. A result carrying a generation older than the last
// applied one is discarded, so a slow response can never overwrite
// fresher state.
type Store struct {
	mu        sync.RWMutex
	snapshots map[Kind]any
	applied   map[Kind]uint64
	nextGen   uint64

	onChange func(Kind)
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[Kind]any),
		applied:   make(map[Kind]uint64),
	}
}

// OnChange registers the single change listener (the render trigger).
func (s *Store) OnChange(fn func(Kind)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// NextGeneration claims a generation for a fetch about to be issued.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Apply replaces the snapshot for kind. It returns true when the value
// was accepted and differed from the previous snapshot. Stale
// generations are discarded; equal values are accepted but produce no
// change notification.
func (s *Store) Apply(kind Kind, gen uint64, value any) bool {
	s.mu.Lock()

	if last, ok := s.applied[kind]; ok && gen <= last {
		s.mu.Unlock()
		log.Debug().
			Str("kind", string(kind)).
			Uint64("generation", gen).
			Uint64("applied", last).
			Msg("discarding stale snapshot")
		return false
	}
	s.applied[kind] = gen

	prev, had := s.snapshots[kind]
	if had && reflect.DeepEqual(prev, value) {
		s.mu.Unlock()
		return false
	}

	s.snapshots[kind] = value
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(kind)
	}
	return true
}

// Get returns the raw snapshot for kind.
func (s *Store) Get(kind Kind) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.snapshots[kind]
	return value, ok
}

// Get returns the snapshot for kind as T. A missing snapshot or a type
// mismatch yields the zero value and false.
func Get[T any](s *Store, kind Kind) (T, bool) {
	var zero T
	raw, ok := s.Get(kind)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
