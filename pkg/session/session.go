// Package session manages authentication session storage.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ramarlina/lqa-cli/pkg/config"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

var (
	mu            sync.RWMutex
	globalSess    *Session
	sessionPath   string
	lastConfigDir string
)

// Session represents an authenticated user session.
type Session struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// New builds a session from a login or register result. The expiry is
// taken from the token's exp claim when the token is a JWT.
func New(res *models.AuthResult) *Session {
	sess := &Session{
		Token:     res.Token,
		User:      res.User,
		CreatedAt: time.Now(),
	}
	if exp, ok := tokenExpiry(res.Token); ok {
		sess.ExpiresAt = &exp
	}
	return sess
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Load reads the session from disk.
func Load() (*Session, error) {
	mu.Lock()
	defer mu.Unlock()

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	// Clear cached session if config directory changed
	if lastConfigDir != "" && lastConfigDir != dir {
		globalSess = nil
	}
	lastConfigDir = dir

	if globalSess != nil {
		return globalSess, nil
	}

	sessionPath = filepath.Join(dir, "session.json")

	if _, err := os.Stat(sessionPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no active session")
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	if sess.ExpiresAt != nil && time.Now().After(*sess.ExpiresAt) {
		return nil, fmt.Errorf("session expired")
	}

	globalSess = &sess
	return globalSess, nil
}

// Save persists the session to disk.
func Save(sess *Session) error {
	mu.Lock()
	defer mu.Unlock()

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	lastConfigDir = dir
	sessionPath = filepath.Join(dir, "session.json")

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(sessionPath, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	globalSess = sess
	return nil
}

// Clear removes the session from disk and memory. Clearing an absent
// session is not an error.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	sessionPath = filepath.Join(dir, "session.json")

	if _, err := os.Stat(sessionPath); err == nil {
		if err := os.Remove(sessionPath); err != nil {
			return fmt.Errorf("remove session file: %w", err)
		}
	}

	globalSess = nil
	return nil
}

// IsAuthenticated checks if there's an active, non-expired session.
func IsAuthenticated() bool {
	mu.RLock()
	defer mu.RUnlock()

	if globalSess == nil {
		return false
	}

	if globalSess.ExpiresAt != nil && time.Now().After(*globalSess.ExpiresAt) {
		return false
	}

	return true
}

// GetToken returns the current session token, or empty string if not authenticated.
func GetToken() string {
	mu.RLock()
	defer mu.RUnlock()

	if globalSess == nil {
		return ""
	}

	return globalSess.Token
}

// GetUser returns the current authenticated user, or nil if not authenticated.
func GetUser() *models.User {
	mu.RLock()
	defer mu.RUnlock()

	if globalSess == nil {
		return nil
	}

	return globalSess.User
}
