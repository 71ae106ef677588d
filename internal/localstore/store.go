package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// State is everything the client persists between runs: credentials,
// the selected team, and UI preferences. There is no versioning or
// migration scheme; missing or invalid fields fall back to defaults.
type State struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	TeamID       string          `json:"team_id,omitempty"`
	Theme        string          `json:"theme,omitempty"`
	SoundEnabled bool            `json:"sound_enabled"`
	SoundVolume  float64         `json:"sound_volume"`
	NotifyPrefs  map[string]bool `json:"notify_prefs,omitempty"`
}

// DefaultState returns the defaults applied when a field is absent.
func DefaultState() State {
	return State{
		Theme:        "dark",
		SoundEnabled: true,
		SoundVolume:  0.5,
		NotifyPrefs:  map[string]bool{},
	}
}

// Store is a JSON-file-backed key-value store, the client-side stand-in
// for browser local storage. All mutations are written through to disk.
type Store struct {
	path string

	mu    sync.Mutex
	state State
}

// Open loads the store from path, filling defaults for anything missing.
// A missing or unreadable file yields a store with pure defaults.
func Open(path string) *Store {
	s := &Store{path: path, state: DefaultState()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to read local state, starting fresh")
		}
		return s
	}

	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt local state, starting fresh")
		return s
	}

	s.state = withDefaults(loaded)
	return s
}

func withDefaults(st State) State {
	def := DefaultState()
	if st.Theme == "" {
		st.Theme = def.Theme
	}
	if st.SoundVolume <= 0 || st.SoundVolume > 1 {
		st.SoundVolume = def.SoundVolume
	}
	if st.NotifyPrefs == nil {
		st.NotifyPrefs = map[string]bool{}
	}
	return st
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	prefs := make(map[string]bool, len(st.NotifyPrefs))
	for k, v := range st.NotifyPrefs {
		prefs[k] = v
	}
	st.NotifyPrefs = prefs
	return st
}

// Update applies fn to the state and persists the result.
func (s *Store) Update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	s.state = withDefaults(s.state)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal local state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write local state: %w", err)
	}
	return nil
}
