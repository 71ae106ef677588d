package optimistic

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestConfirmDropsEntryWithoutRollback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ledger := NewLedger(clock, 10*time.Second)

	rolledBack := false
	id := ledger.Record("bid", func() { rolledBack = true })
	assert.Equal(t, 1, ledger.Len())

	ledger.Confirm(id)
	assert.Equal(t, 0, ledger.Len())
	assert.False(t, rolledBack)

	clock.Advance(time.Minute)
	assert.Equal(t, 0, ledger.Sweep(), "confirmed entries never expire")
	assert.False(t, rolledBack)
}

func TestRollbackRunsExactlyOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ledger := NewLedger(clock, 10*time.Second)

	calls := 0
	id := ledger.Record("wishlist add", func() { calls++ })

	ledger.Rollback(id)
	ledger.Rollback(id)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	assert.Equal(t, 0, ledger.Sweep())
	assert.Equal(t, 1, calls)
}

func TestSweepRollsBackOnlyExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ledger := NewLedger(clock, 10*time.Second)

	var expired, fresh bool
	ledger.Record("old", func() { expired = true })

	clock.Advance(6 * time.Second)
	ledger.Record("new", func() { fresh = true })

	clock.Advance(5 * time.Second) // old is 11s in, new only 5s
	assert.Equal(t, 1, ledger.Sweep())
	assert.True(t, expired)
	assert.False(t, fresh)
	assert.Equal(t, 1, ledger.Len())
}
