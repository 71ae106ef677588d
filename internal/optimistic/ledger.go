package optimistic

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Pending is a speculative local mutation awaiting server confirmation.
// Apply has already run when the entry is recorded; Rollback reverts it
// if the server rejects the action or the deadline passes.
type Pending struct {
	ID       uuid.UUID
	Label    string
	Deadline time.Time
	rollback func()
}

// Ledger tracks pending optimistic updates. Every entry carries a
// deadline; the sweep force-rolls-back anything the server never
// confirmed, so local state cannot diverge permanently.
type Ledger struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	pending map[uuid.UUID]*Pending
}

// NewLedger creates a ledger whose entries expire after ttl.
func NewLedger(clock clockwork.Clock, ttl time.Duration) *Ledger {
	return &Ledger{
		clock:   clock,
		ttl:     ttl,
		pending: make(map[uuid.UUID]*Pending),
	}
}

// Record registers an applied speculative mutation and returns its id.
func (l *Ledger) Record(label string, rollback func()) uuid.UUID {
	id := uuid.New()

	l.mu.Lock()
	l.pending[id] = &Pending{
		ID:       id,
		Label:    label,
		Deadline: l.clock.Now().Add(l.ttl),
		rollback: rollback,
	}
	l.mu.Unlock()

	return id
}

// Confirm discards the entry: the server accepted the mutation.
func (l *Ledger) Confirm(id uuid.UUID) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
}

// Rollback reverts and discards the entry: the server rejected it.
func (l *Ledger) Rollback(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.pending[id]
	delete(l.pending, id)
	l.mu.Unlock()

	if ok && entry.rollback != nil {
		entry.rollback()
	}
}

// Len returns the number of unconfirmed entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Sweep rolls back every entry past its deadline and returns how many
// were reverted.
func (l *Ledger) Sweep() int {
	now := l.clock.Now()

	l.mu.Lock()
	var expired []*Pending
	for id, entry := range l.pending {
		if !entry.Deadline.After(now) {
			expired = append(expired, entry)
			delete(l.pending, id)
		}
	}
	l.mu.Unlock()

	for _, entry := range expired {
		log.Warn().
			Str("update_id", entry.ID.String()).
			Str("label", entry.Label).
			Msg("optimistic update expired unconfirmed, rolling back")
		if entry.rollback != nil {
			entry.rollback()
		}
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled.
func (l *Ledger) Run(ctx context.Context) {
	ticker := l.clock.NewTicker(l.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			l.Sweep()
		}
	}
}
