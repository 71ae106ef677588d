package auction_api_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/auctionsync/clients"
	"github.com/pitchside/auctionsync/internal/localstore"
	"github.com/pitchside/auctionsync/internal/session"
)

func newTestAPI(t *testing.T, handler http.Handler) (*AuctionApiClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	local := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	creds := session.NewStore(local)
	require.NoError(t, creds.Set(session.Credentials{AccessToken: "token", RefreshToken: "refresh"}))

	api := NewAuctionApiClient(server.URL, creds, nil)
	api.SetHTTPClient(server.Client())
	return api, server
}

func TestListPlayers_EnvelopeShapes(t *testing.T) {
	payloads := map[string]string{
		"wrapped": `{"ok": true, "players": [{"id": "p1", "name": "R. Sharma"}, {"id": "p2", "name": "V. Kohli"}]}`,
		"bare":    `[{"id": "p1", "name": "R. Sharma"}, {"id": "p2", "name": "V. Kohli"}]`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			}))

			players, err := api.ListPlayers(context.Background())
			require.NoError(t, err)
			require.Len(t, players, 2)
			assert.Equal(t, "p1", players[0].ID)
			assert.Equal(t, "V. Kohli", players[1].Name)
		})
	}
}

func TestGetCurrentPlayer_NoPlayer(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "No current player"}`))
	}))

	player, err := api.GetCurrentPlayer(context.Background())
	require.NoError(t, err)
	assert.Nil(t, player)
}

func TestGetCurrentPlayer_Live(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "p7", "name": "J. Bumrah", "role": "Bowler", "base_price": 200, "status": "live"}`))
	}))

	player, err := api.GetCurrentPlayer(context.Background())
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, "J. Bumrah", player.Name)
	assert.Equal(t, 200.0, player.BasePrice)
}

func TestPlaceBid_ValidationBeforeNetwork(t *testing.T) {
	called := false
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := api.PlaceBid(context.Background(), "p1", "t1", 0)
	require.ErrorIs(t, err, clients.ErrValidation)

	err = api.PlaceBid(context.Background(), "", "t1", 100)
	require.ErrorIs(t, err, clients.ErrValidation)

	assert.False(t, called, "validation failures must not issue network calls")
}

func TestPlaceBid_ServerRejection(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "detail": "bid below current highest"}`))
	}))

	err := api.PlaceBid(context.Background(), "p1", "t1", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bid below current highest")
}

func TestSoftFailEndpoints_ReturnForbidden(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := api.GetViewerAnalytics(context.Background())
	assert.ErrorIs(t, err, clients.ErrForbidden)

	_, err = api.GetActivityLogs(context.Background())
	assert.ErrorIs(t, err, clients.ErrForbidden)

	_, err = api.ListEligiblePlayers(context.Background())
	assert.ErrorIs(t, err, clients.ErrForbidden)

	_, err = api.GetAllBidHistory(context.Background())
	assert.ErrorIs(t, err, clients.ErrForbidden)
}

func TestLogin_StoresCredentials(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/team/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "thunder", r.FormValue("username"))
		w.Write([]byte(`{"ok": true, "access_token": "a1", "refresh_token": "r1", "token_type": "bearer", "team_id": "t9", "team_name": "Thunder"}`))
	}))

	result, err := api.TeamLogin(context.Background(), "thunder", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t9", result.TeamID)
	assert.Equal(t, "a1", api.Credentials().Get().AccessToken)
	assert.Equal(t, "r1", api.Credentials().Get().RefreshToken)
}

func TestLogin_Validation(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := api.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, clients.ErrValidation)

	_, err = api.TeamLogin(context.Background(), "thunder", "")
	assert.ErrorIs(t, err, clients.ErrValidation)
}
