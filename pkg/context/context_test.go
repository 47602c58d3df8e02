package context

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func useTempDir(t *testing.T) {
	t.Helper()
	t.Setenv("LQA_CONFIG_DIR", t.TempDir())
	mu.Lock()
	globalCtx = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		globalCtx = nil
		mu.Unlock()
	})
}

func TestResolveTarget(t *testing.T) {
	useTempDir(t)

	if _, _, err := ResolveTarget("this", TypeArticle); err == nil {
		t.Error("expected error without context")
	}

	id, fromCtx, err := ResolveTarget("12", TypeArticle)
	if err != nil || id != "12" || fromCtx {
		t.Errorf("ResolveTarget(12) = %q, %v, %v", id, fromCtx, err)
	}

	if err := Set("42", TypeCase); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	id, fromCtx, err = ResolveTarget("this", TypeCase)
	if err != nil || id != "42" || !fromCtx {
		t.Errorf("ResolveTarget(this) = %q, %v, %v", id, fromCtx, err)
	}

	if _, _, err := ResolveTarget("this", TypeArticle); err == nil {
		t.Error("expected type mismatch error")
	}

	n, err := ResolveID("this", TypeCase)
	if err != nil || n != 42 {
		t.Errorf("ResolveID(this) = %d, %v", n, err)
	}
	if _, err := ResolveID("abc", TypeCase); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestConversation(t *testing.T) {
	useTempDir(t)

	if got := Conversation(); got != "" {
		t.Errorf("Conversation() = %q, want empty", got)
	}

	id, err := NewConversation()
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("conversation id %q is not a UUID", id)
	}
	if Conversation() != id {
		t.Errorf("Conversation() = %q, want %q", Conversation(), id)
	}

	// Viewing an article keeps the conversation
	if err := Set("3", TypeArticle); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if Conversation() != id {
		t.Error("Set() dropped the conversation")
	}

	if err := SetConversation("session_123"); err != nil {
		t.Fatalf("SetConversation() error = %v", err)
	}
	if Conversation() != "session_123" {
		t.Errorf("Conversation() = %q", Conversation())
	}
}

func TestExpiry(t *testing.T) {
	useTempDir(t)

	old := &Context{LastID: "1", LastType: TypeConcept, UpdatedAt: time.Now().Add(-2 * ContextTTL)}
	if err := Save(old); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected expired context error")
	}
	if _, _, err := ResolveTarget("this", TypeConcept); err == nil {
		t.Error("expired context must not resolve")
	}
}

func TestClear(t *testing.T) {
	useTempDir(t)

	if err := Set("9", TypeQA); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, _, err := Get(); err == nil {
		t.Error("Get() after Clear() should fail")
	}
}
