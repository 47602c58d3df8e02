package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ramarlina/lqa-cli/pkg/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func useTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LQA_CONFIG_DIR", dir)
	t.Cleanup(func() {
		mu.Lock()
		globalSess = nil
		lastConfigDir = ""
		mu.Unlock()
	})
	return dir
}

func TestNewReadsExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	sess := New(&models.AuthResult{Token: signedToken(t, exp), User: &models.User{ID: 1, Username: "alice"}})
	if sess.ExpiresAt == nil {
		t.Fatal("ExpiresAt not set from token")
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}

	sess = New(&models.AuthResult{Token: "opaque-token"})
	if sess.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil for opaque token", sess.ExpiresAt)
	}
}

func TestSaveLoadClear(t *testing.T) {
	dir := useTempDir(t)

	sess := &Session{
		Token:     "tok",
		User:      &models.User{ID: 7, Username: "bob"},
		CreatedAt: time.Now(),
	}
	if err := Save(sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %v, want 0600", info.Mode().Perm())
	}

	// Force a reload from disk
	mu.Lock()
	globalSess = nil
	mu.Unlock()

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Token != "tok" || loaded.User.Username != "bob" {
		t.Errorf("loaded = %+v", loaded)
	}
	if !IsAuthenticated() || GetToken() != "tok" || GetUser().ID != 7 {
		t.Error("session accessors disagree with loaded session")
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if IsAuthenticated() || GetToken() != "" || GetUser() != nil {
		t.Error("session still present after Clear()")
	}
	if _, err := Load(); err == nil {
		t.Error("Load() after Clear() should fail")
	}

	// Clearing twice is a no-op
	if err := Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestLoadExpired(t *testing.T) {
	useTempDir(t)

	past := time.Now().Add(-time.Hour)
	if err := Save(&Session{Token: "old", ExpiresAt: &past}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if IsAuthenticated() {
		t.Error("expired session reported as authenticated")
	}

	mu.Lock()
	globalSess = nil
	mu.Unlock()

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an expired session")
	}
}

func TestProviderLogout(t *testing.T) {
	useTempDir(t)

	if err := Save(&Session{Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p := Provider{}
	if p.GetToken() != "tok" {
		t.Errorf("GetToken() = %q", p.GetToken())
	}

	p.Logout()
	if p.GetToken() != "" {
		t.Error("token still present after Logout()")
	}
	p.Logout()
}

func TestProviderLogoutClearsState(t *testing.T) {
	useTempDir(t)

	if err := Save(&Session{Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var cleared int
	p := Provider{OnLogout: func() error {
		cleared++
		if GetToken() != "" {
			t.Error("state cleared before the session")
		}
		return errors.New("disk full")
	}}

	p.Logout()
	if cleared != 1 {
		t.Errorf("OnLogout ran %d times, want 1", cleared)
	}
	if p.GetToken() != "" {
		t.Error("token still present after Logout()")
	}
}
