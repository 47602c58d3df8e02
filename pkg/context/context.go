// Package context remembers what the user last looked at, so commands can
// take "this" as a target and questions continue the current conversation.
package context

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ramarlina/lqa-cli/pkg/config"
)

const (
	// ContextTTL is the time-to-live for context entries (1 hour)
	ContextTTL = time.Hour
)

// Target types.
const (
	TypeArticle = "article"
	TypeCase    = "case"
	TypeConcept = "concept"
	TypeQA      = "qa"
)

var (
	mu          sync.RWMutex
	globalCtx   *Context
	contextPath string
)

// Context represents the current CLI context.
type Context struct {
	LastID    string    `json:"last_id"`
	LastType  string    `json:"last_type"`
	SessionID string    `json:"session_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func path() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "context.json"), nil
}

// Load reads the context from disk.
func Load() (*Context, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalCtx != nil {
		if time.Since(globalCtx.UpdatedAt) > ContextTTL {
			globalCtx = nil
		} else {
			return globalCtx, nil
		}
	}

	p, err := path()
	if err != nil {
		return nil, err
	}
	contextPath = p

	if _, err := os.Stat(contextPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no context available")
	}

	data, err := os.ReadFile(contextPath)
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}

	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}

	if time.Since(ctx.UpdatedAt) > ContextTTL {
		return nil, fmt.Errorf("context expired")
	}

	globalCtx = &ctx
	return globalCtx, nil
}

// Save persists the context to disk.
func Save(ctx *Context) error {
	mu.Lock()
	defer mu.Unlock()

	p, err := path()
	if err != nil {
		return err
	}
	contextPath = p

	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}

	if err := os.WriteFile(contextPath, data, 0600); err != nil {
		return fmt.Errorf("write context file: %w", err)
	}

	globalCtx = ctx
	return nil
}

// Clear removes the context from disk and memory.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	p, err := path()
	if err != nil {
		return err
	}
	contextPath = p

	if _, err := os.Stat(contextPath); err == nil {
		if err := os.Remove(contextPath); err != nil {
			return fmt.Errorf("remove context file: %w", err)
		}
	}

	globalCtx = nil
	return nil
}

// current returns a copy of the live context, or an empty one.
func current() Context {
	ctx, err := Load()
	if err != nil {
		return Context{}
	}
	return *ctx
}

// Set sets the current context to an object, keeping the conversation.
func Set(id, typ string) error {
	ctx := current()
	ctx.LastID = id
	ctx.LastType = typ
	ctx.UpdatedAt = time.Now()
	return Save(&ctx)
}

// Get returns the current context ID and type.
func Get() (string, string, error) {
	ctx, err := Load()
	if err != nil {
		return "", "", err
	}
	if ctx.LastID == "" {
		return "", "", fmt.Errorf("no context available")
	}
	return ctx.LastID, ctx.LastType, nil
}

// ResolveTarget resolves "this" to the last viewed object of type typ.
// Any other target is returned unchanged.
func ResolveTarget(target, typ string) (string, bool, error) {
	if target != "this" {
		return target, false, nil
	}
	id, lastType, err := Get()
	if err != nil {
		return "", false, fmt.Errorf("no context available: use an explicit ID")
	}
	if typ != "" && lastType != typ {
		return "", false, fmt.Errorf("last item was a %s, not a %s", lastType, typ)
	}
	return id, true, nil
}

// ResolveID is ResolveTarget for numeric ids.
func ResolveID(target, typ string) (int64, error) {
	raw, _, err := ResolveTarget(target, typ)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id: %q", typ, raw)
	}
	return id, nil
}

// Conversation returns the current conversation id, or "" if none is active.
func Conversation() string {
	return current().SessionID
}

// SetConversation records id as the current conversation.
func SetConversation(id string) error {
	ctx := current()
	ctx.SessionID = id
	ctx.UpdatedAt = time.Now()
	return Save(&ctx)
}

// NewConversation starts a conversation with a fresh id.
func NewConversation() (string, error) {
	id := uuid.NewString()
	if err := SetConversation(id); err != nil {
		return "", err
	}
	return id, nil
}
