// Package session owns the authenticated identity of the client: an opaque
// bearer token plus the user profile captured at login. State is persisted
// in a single JSON file so that it survives restarts and is visible to every
// concurrently running instance sharing the same config dir.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/buffsmarket/marketcli/internal/client/models"
	"github.com/buffsmarket/marketcli/internal/logging"
	"github.com/golang-jwt/jwt/v5"

	"sync"
)

// fileState mirrors the two keys the web client kept in localStorage:
// the raw token and the profile as a serialized JSON string.
type fileState struct {
	AuthToken string `json:"authToken,omitempty"`
	User      string `json:"user,omitempty"`
}

// State is the derived in-memory view. Authenticated iff both the token and
// a parseable user are present.
type State struct {
	Token string
	User  *models.UserProfile
}

func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s State) equal(other State) bool {
	if s.Token != other.Token {
		return false
	}
	if (s.User == nil) != (other.User == nil) {
		return false
	}
	return s.User == nil || *s.User == *other.User
}

// Store holds the session state and its persistence. Safe for concurrent
// use. At most one identity is held at a time: OnAuthSuccess always
// overwrites, never merges.
type Store struct {
	path string
	log  logging.Logger

	mu    sync.RWMutex
	state State
	subs  []chan State
}

func NewStore(path string, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{path: path, log: log}
}

// Load reads the persisted session and derives the current state. Anything
// malformed, partial, or missing is treated as logged out; corruption is
// never surfaced as an error, only logged.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.read()
	return s.state
}

func (s *Store) read() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return State{}
	}
	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		s.log.Warn(context.Background(), "malformed session file, treating as logged out", "path", s.path)
		return State{}
	}
	if fs.AuthToken == "" || fs.User == "" {
		return State{}
	}
	var u models.UserProfile
	if err := json.Unmarshal([]byte(fs.User), &u); err != nil {
		s.log.Warn(context.Background(), "malformed user blob, treating as logged out", "path", s.path)
		return State{}
	}
	return State{Token: fs.AuthToken, User: &u}
}

// OnAuthSuccess persists the new identity and transitions to authenticated.
func (s *Store) OnAuthSuccess(token string, user *models.UserProfile) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(fileState{AuthToken: token, User: string(userJSON)}); err != nil {
		return err
	}
	u := *user
	s.state = State{Token: token, User: &u}
	return nil
}

// Logout clears both persisted keys and transitions to unauthenticated.
// It succeeds regardless of the prior state.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// write persists st atomically: temp file in the same dir, then rename.
func (s *Store) write(st fileState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// IsAuthenticated reports whether a complete identity is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

// Token returns the current bearer token, "" when logged out. Suitable as
// the token source of the GraphQL client.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the current profile, nil when logged out.
func (s *Store) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Expiry decodes the exp claim of the stored token without verifying the
// signature. Display only: authentication decisions always defer to the
// server, which treats the token as the sole authority.
func (s *Store) Expiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
