package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/auctionsync/internal/localstore"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	token := signedToken(t, Claims{
		UserID:   "u1",
		Email:    "owner@example.com",
		TeamID:   "t7",
		TeamName: "Thunder",
		Role:     "team",
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "t7", claims.TeamID)
	assert.Equal(t, "team", claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestStore_PersistsThroughLocalStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	local := localstore.Open(path)

	store := NewStore(local)
	assert.True(t, store.Get().Empty())

	require.NoError(t, store.Set(Credentials{AccessToken: "a1", RefreshToken: "r1"}))

	reloaded := NewStore(localstore.Open(path))
	assert.Equal(t, Credentials{AccessToken: "a1", RefreshToken: "r1"}, reloaded.Get())
}

func TestStore_SetAccessTokenKeepsRefresh(t *testing.T) {
	local := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	store := NewStore(local)
	require.NoError(t, store.Set(Credentials{AccessToken: "a1", RefreshToken: "r1"}))

	require.NoError(t, store.SetAccessToken("a2"))
	assert.Equal(t, Credentials{AccessToken: "a2", RefreshToken: "r1"}, store.Get())
}

func TestStore_Clear(t *testing.T) {
	local := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	store := NewStore(local)
	require.NoError(t, store.Set(Credentials{AccessToken: "a1", RefreshToken: "r1"}))

	require.NoError(t, store.Clear())
	assert.True(t, store.Get().Empty())
	assert.Empty(t, local.Get().AccessToken)
}

func TestStore_ClaimsWithoutToken(t *testing.T) {
	store := NewStore(localstore.Open(filepath.Join(t.TempDir(), "state.json")))
	_, err := store.Claims()
	assert.Error(t, err)
}
