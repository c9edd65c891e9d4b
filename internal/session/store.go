// Package session persists the authenticated session (bearer token plus
// user id) across runs, the way the browser client kept them in
// localStorage. The file is the single authoritative source for "is a
// session active": callers re-read it at the start of every operation
// instead of caching, because login and logout can happen between reads.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

// Store reads and writes the persisted session.
type Store interface {
	// Current returns the active session, or (nil, nil) when logged out.
	// An expired token counts as logged out.
	Current() (*domain.Session, error)
	// Save persists the session, replacing any previous one.
	Save(s domain.Session) error
	// Clear removes the persisted session. Clearing an absent session is
	// not an error.
	Clear() error
}

// FileStore stores the session as a JSON file.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileStore creates a store at path. An empty path resolves to
// <user config dir>/proyectoa3/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "proyectoa3", "session.json")
	}
	return &FileStore{path: path, now: time.Now}, nil
}

func (s *FileStore) Current() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is equivalent to being logged out.
		return nil, nil
	}
	if sess.Token == "" || sess.UserID == "" {
		return nil, nil
	}
	if tokenExpired(sess.Token, s.now()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *FileStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// tokenExpired inspects the exp claim without verifying the signature.
// The server remains authoritative; this only avoids sending a token that
// is guaranteed to be rejected. Tokens that are not JWTs (or carry no
// exp claim) are kept.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	sess *domain.Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// NewMemoryStoreWith returns a store preloaded with an active session.
func NewMemoryStoreWith(sess domain.Session) *MemoryStore {
	return &MemoryStore{sess: &sess}
}

func (s *MemoryStore) Current() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, nil
	}
	cp := *s.sess
	return &cp, nil
}

func (s *MemoryStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
