// Package auth implements the client's mock login session. There is no
// server-side account system; any non-empty credentials are accepted and the
// session is only a locally persisted flag.
package auth

import (
	"log"
	"strings"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/storage"
)

// GuestName is the display name for a guest session.
const GuestName = "Guest"

// KV is the slice of the local storage the session persists through.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Session tracks whether the user is logged in and under what name.
type Session struct {
	kv       KV
	loggedIn bool
	username string
}

// NewSession restores a persisted login, if any.
func NewSession(kv KV) *Session {
	s := &Session{kv: kv}

	if v, ok := kv.Get(storage.KeyLoggedIn); ok && v == "true" {
		s.loggedIn = true
		if name, ok := kv.Get(storage.KeyUsername); ok {
			s.username = name
		}
	}

	return s
}

// LoggedIn reports whether a session is active.
func (s *Session) LoggedIn() bool { return s.loggedIn }

// Username returns the active session's display name.
func (s *Session) Username() string { return s.username }

// Login accepts any non-empty credentials.
func (s *Session) Login(username, password string) error {
	return s.start(username, password, "Invalid username or password.")
}

// Register behaves like Login; no account is created anywhere.
func (s *Session) Register(username, password string) error {
	return s.start(username, password, "Username and password cannot be empty.")
}

// LoginAsGuest starts a session under the guest name without credentials.
func (s *Session) LoginAsGuest() {
	s.loggedIn = true
	s.username = GuestName
	s.persist()
}

// Logout ends the session and removes the persisted flags. The conversation
// itself is cleared by the caller.
func (s *Session) Logout() {
	s.loggedIn = false
	s.username = ""
	if err := s.kv.Delete(storage.KeyLoggedIn); err != nil {
		log.Printf("failed to clear login flag: %v", err)
	}
	if err := s.kv.Delete(storage.KeyUsername); err != nil {
		log.Printf("failed to clear stored username: %v", err)
	}
}

func (s *Session) start(username, password, failure string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return &CredentialsError{Message: failure}
	}
	s.loggedIn = true
	s.username = username
	s.persist()
	return nil
}

func (s *Session) persist() {
	if err := s.kv.Set(storage.KeyLoggedIn, "true"); err != nil {
		log.Printf("failed to persist login flag: %v", err)
	}
	if err := s.kv.Set(storage.KeyUsername, s.username); err != nil {
		log.Printf("failed to persist username: %v", err)
	}
}

// CredentialsError is returned when login or registration input is rejected.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	return e.Message
}
