package mcp

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ramarlina/lqa-cli/pkg/apitest"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

func TestAuthState(t *testing.T) {
	t.Setenv("LQA_TOKEN", "")

	a := NewAuthState("http://localhost", nil)
	if a.IsAuthenticated() {
		t.Fatal("new state should be unauthenticated")
	}

	a.SetAuth("tok", &models.User{ID: 1, Username: "u"})
	if !a.IsAuthenticated() || a.GetUser().Username != "u" {
		t.Error("SetAuth() did not store the session")
	}
	if a.GetClient().Token() != "tok" {
		t.Errorf("client token = %q", a.GetClient().Token())
	}

	a.SetConversation("s-1")
	a.Logout()
	a.Logout()
	if a.IsAuthenticated() || a.GetUser() != nil || a.CurrentConversation() != "" {
		t.Error("Logout() should clear token, user and conversation")
	}
	if a.GetClient().Token() != "" {
		t.Error("client still carries a token after logout")
	}
}

func TestAuthStateConversation(t *testing.T) {
	t.Setenv("LQA_TOKEN", "")
	a := NewAuthState("http://localhost", nil)

	first := a.Conversation(false)
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("generated id %q is not a UUID", first)
	}
	if a.Conversation(false) != first {
		t.Error("conversation should persist")
	}
	if a.Conversation(true) == first {
		t.Error("fresh conversation reused the old id")
	}

	a.SetConversation("")
	if a.CurrentConversation() == "" {
		t.Error("empty id should not reset the conversation")
	}
}

func TestAuthStateLoginValidation(t *testing.T) {
	t.Setenv("LQA_TOKEN", "")
	srv := apitest.New()
	defer srv.Close()

	a := NewAuthState(srv.URL, nil)
	ctx := context.Background()

	if err := a.Login(ctx, " ", "pw"); err == nil {
		t.Error("expected error for empty username")
	}
	if err := a.Login(ctx, "u", ""); err == nil {
		t.Error("expected error for empty password")
	}
	if len(srv.Requests()) != 0 {
		t.Error("validation failures must not reach the server")
	}

	srv.Envelope("POST", "/api/auth/login", 200, "", map[string]any{"user": map[string]any{"id": 1}})
	if err := a.Login(ctx, "u", "pw"); err == nil {
		t.Error("expected error for a response without token")
	}
}

func TestAuthStateConcurrentAccess(t *testing.T) {
	t.Setenv("LQA_TOKEN", "")
	a := NewAuthState("http://localhost", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.SetAuth("tok", nil)
			a.Conversation(false)
		}()
		go func() {
			defer wg.Done()
			_ = a.GetToken()
			a.Logout()
		}()
	}
	wg.Wait()
}
