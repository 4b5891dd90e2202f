package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Session holds the bearer credentials for one authenticated user.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Authenticated reports whether the session carries an access token.
// It says nothing about the token still being valid.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// Store keeps the current session in memory and mirrors it to a single
// JSON record on disk. Every write replaces the whole record, so a partially
// updated session can never be observed.
type Store struct {
	path string
	log  zerolog.Logger

	mu      sync.Mutex
	session Session
}

// NewStore creates a session store backed by the file at path.
// Call Load before first use.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// DefaultSessionPath returns ~/.todogether/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todogether", "session.json"), nil
}

// Load reads the persisted session record. A missing or malformed record
// degrades to an empty, unauthenticated session; Load never fails.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Msg("session record unreadable, starting logged out")
		}
		s.session = Session{}
		return
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Warn().Err(err).Msg("session record malformed, starting logged out")
		s.removeFile()
		s.session = Session{}
		return
	}
	s.session = sess
}

// Save replaces the in-memory session and persists it as a whole record.
// The in-memory session is updated even when the write fails.
func (s *Store) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{AccessToken: accessToken, RefreshToken: refreshToken}

	data, err := json.Marshal(s.session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the persisted record and resets the in-memory session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	s.removeFile()
}

// Session returns a copy of the current session.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) removeFile() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msg("could not remove session record")
	}
}
