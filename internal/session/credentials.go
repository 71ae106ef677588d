package session

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pitchside/auctionsync/internal/localstore"
)

// Credentials is the bearer token pair issued at login. Expiry is
// detected reactively via 401 responses, never tracked locally.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether no session is held.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Claims are the fields the client reads out of its own access token
// for local role gating. The token is NOT verified here; the server is
// the only party that validates signatures.
type Claims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// ParseClaims extracts claims from an access token without verification.
func ParseClaims(accessToken string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return &claims, nil
}

// Store holds the current credentials in memory and writes every
// mutation through to the persistent local store.
type Store struct {
	local *localstore.Store

	mu    sync.RWMutex
	creds Credentials
}

// NewStore loads any persisted credentials from the local store.
func NewStore(local *localstore.Store) *Store {
	st := local.Get()
	return &Store{
		local: local,
		creds: Credentials{AccessToken: st.AccessToken, RefreshToken: st.RefreshToken},
	}
}

// Get returns the current credentials.
func (s *Store) Get() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Set replaces the credentials and persists them.
func (s *Store) Set(creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	return s.local.Update(func(st *localstore.State) {
		st.AccessToken = creds.AccessToken
		st.RefreshToken = creds.RefreshToken
	})
}

// SetAccessToken replaces only the access token, keeping the refresh
// token (the shape of a successful refresh exchange).
func (s *Store) SetAccessToken(token string) error {
	s.mu.Lock()
	s.creds.AccessToken = token
	creds := s.creds
	s.mu.Unlock()

	return s.local.Update(func(st *localstore.State) {
		st.AccessToken = creds.AccessToken
	})
}

// Clear destroys the session credentials (logout / expired refresh).
func (s *Store) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()

	return s.local.Update(func(st *localstore.State) {
		st.AccessToken = ""
		st.RefreshToken = ""
	})
}

// Claims parses claims from the currently held access token.
func (s *Store) Claims() (*Claims, error) {
	creds := s.Get()
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("no access token held")
	}
	return ParseClaims(creds.AccessToken)
}
