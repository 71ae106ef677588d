package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_WholesaleReplace(t *testing.T) {
	store := NewStore()

	gen := store.NextGeneration()
	require.True(t, store.Apply(KindPlayers, gen, []string{"a", "b"}))

	gen = store.NextGeneration()
	require.True(t, store.Apply(KindPlayers, gen, []string{"c"}))

	players, ok := Get[[]string](store, KindPlayers)
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, players, "apply replaces the whole snapshot")
}

func TestApply_DiscardsStaleGeneration(t *testing.T) {
	store := NewStore()

	slowGen := store.NextGeneration()
	fastGen := store.NextGeneration()

	require.True(t, store.Apply(KindTeams, fastGen, "fresh"))
	assert.False(t, store.Apply(KindTeams, slowGen, "stale"),
		"a response claimed before the applied one must be discarded")

	value, _ := Get[string](store, KindTeams)
	assert.Equal(t, "fresh", value)
}

func TestApply_EqualValueSuppressesNotification(t *testing.T) {
	store := NewStore()

	var changes []Kind
	store.OnChange(func(kind Kind) { changes = append(changes, kind) })

	assert.True(t, store.Apply(KindStatus, store.NextGeneration(), "running"))
	assert.False(t, store.Apply(KindStatus, store.NextGeneration(), "running"))
	assert.True(t, store.Apply(KindStatus, store.NextGeneration(), "paused"))

	assert.Equal(t, []Kind{KindStatus, KindStatus}, changes)
}

func TestApply_IndependentGenerationsPerKind(t *testing.T) {
	store := NewStore()

	playersGen := store.NextGeneration()
	teamsGen := store.NextGeneration()

	// The later global generation landing for one kind must not block
	// the earlier one landing for a different kind.
	require.True(t, store.Apply(KindTeams, teamsGen, "teams"))
	require.True(t, store.Apply(KindPlayers, playersGen, "players"))
}

func TestGet_TypeMismatch(t *testing.T) {
	store := NewStore()
	store.Apply(KindChat, store.NextGeneration(), []int{1, 2})

	_, ok := Get[string](store, KindChat)
	assert.False(t, ok)

	_, ok = Get[string](store, KindWishlist)
	assert.False(t, ok, "missing snapshot yields false")
}
