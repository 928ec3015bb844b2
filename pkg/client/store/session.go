// Package store holds client-side state: the signed-in session and the
// working set of drafts. Stores are plain values passed to their users and
// are safe for concurrent use.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// User is the account snapshot returned by signup, login and me.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionFile struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// Session is the current user and bearer token. When Path is set every
// change is written through to that file.
type Session struct {
	Path string

	mu    sync.RWMutex
	user  *User
	token string
}

func NewSession(path string) *Session { return &Session{Path: path} }

// LoadSession reads path; a missing file yields an empty session.
func LoadSession(path string) (*Session, error) {
	s := NewSession(path)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	var f sessionFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	s.user, s.token = f.User, f.Token
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

func (s *Session) Set(u User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.token = &u, token
	return s.persist()
}

// Clear signs out locally and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.token = nil, ""
	if s.Path == "" {
		return nil
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Session) persist() error {
	if s.Path == "" {
		return nil
	}
	b, err := json.MarshalIndent(sessionFile{User: s.user, Token: s.token}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}
