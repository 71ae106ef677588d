package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/auctionsync/internal/localstore"
	"github.com/pitchside/auctionsync/internal/session"
)

func newTestSession(t *testing.T, access, refresh string) *session.Store {
	t.Helper()
	local := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	store := session.NewStore(local)
	require.NoError(t, store.Set(session.Credentials{AccessToken: access, RefreshToken: refresh}))
	return store
}

func newTestClient(t *testing.T, server *httptest.Server, creds *session.Store, onExpired func()) *AuthClient {
	t.Helper()
	client := NewAuthClient(server.URL, creds, onExpired)
	client.SetHTTPClient(server.Client())
	return client
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://api.example.com", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
		{"api.example.com", "https://api.example.com"},
		{"ws://api.example.com", "wss://api.example.com"},
		{"https://api.example.com/", "https://api.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
	}
}

func TestAuthClient_AttachesBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, newTestSession(t, "token-1", "refresh-1"), nil)
	_, err := client.Get(context.Background(), "/players/")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", gotAuth)
}

func TestAuthClient_RefreshesExactlyOnceOn401(t *testing.T) {
	var refreshCalls, apiCalls atomic.Int32

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "refresh-1", r.FormValue("refresh_token"))
			w.Write([]byte(`{"ok": true, "access_token": "token-2", "token_type": "bearer"}`))
		case "/teams/":
			apiCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer token-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	creds := newTestSession(t, "stale-token", "refresh-1")
	client := newTestClient(t, server, creds, nil)

	body, err := client.Get(context.Background(), "/teams/")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), apiCalls.Load(), "original call plus exactly one retry")
	assert.Equal(t, "token-2", creds.Get().AccessToken)
}

func TestAuthClient_SecondConsecutive401TerminatesSession(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.Write([]byte(`{"ok": true, "access_token": "token-2"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var expired bool
	creds := newTestSession(t, "stale", "refresh-1")
	client := newTestClient(t, server, creds, func() { expired = true })

	_, err := client.Get(context.Background(), "/teams/")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, expired, "session-expired callback must fire")
	assert.True(t, creds.Get().Empty(), "credentials must be cleared")
}

func TestAuthClient_FailedRefreshTerminatesSession(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := newTestSession(t, "stale", "refresh-1")
	client := newTestClient(t, server, creds, nil)

	_, err := client.Get(context.Background(), "/teams/")
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthClient_SoftFail401ReturnsStaleResponse(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "expired"}`))
	}))
	defer server.Close()

	var expired bool
	creds := newTestSession(t, "stale", "refresh-1")
	client := newTestClient(t, server, creds, func() { expired = true })

	body, err := client.Get(context.Background(), "/viewer/analytics")
	require.NoError(t, err, "soft-fail endpoints do not force logout")
	assert.Contains(t, string(body), "expired")
	assert.False(t, expired)
	assert.False(t, creds.Get().Empty(), "credentials survive soft-fail auth errors")
}

func TestAuthClient_Forbidden(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server, newTestSession(t, "t", "r"), nil)

	_, err := client.Get(context.Background(), "/admin/activity-logs")
	require.ErrorIs(t, err, ErrForbidden, "enumerated endpoints soft-fail on 403")

	_, err = client.Get(context.Background(), "/teams/")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrForbidden, "other endpoints surface 403 as a hard error")
}

func TestIsSoftFail(t *testing.T) {
	assert.True(t, IsSoftFail("/viewer/analytics"))
	assert.True(t, IsSoftFail("/auction/bid_history/p1"))
	assert.True(t, IsSoftFail("/admin/auction/eligible-players"))
	assert.False(t, IsSoftFail("/auction/bid"))
	assert.False(t, IsSoftFail("/players/"))
}
