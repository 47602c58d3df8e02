// Package mcp provides an MCP server for the legal QA service.
package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// AuthState manages in-memory authentication state for the MCP server.
// It is separate from the CLI's disk-based session so the server stays
// stateless across restarts.
type AuthState struct {
	mu           sync.RWMutex
	token        string
	user         *models.User
	conversation string
	apiURL       string
	client       *client.Client
}

// NewAuthState creates a new authentication state manager. A token in
// LQA_TOKEN is used until the first login.
func NewAuthState(apiURL string, logger *zap.Logger) *AuthState {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &AuthState{
		apiURL: apiURL,
		token:  os.Getenv("LQA_TOKEN"),
	}
	a.client = client.New(apiURL,
		client.WithSession(a),
		client.WithLogger(logger),
		client.WithNotifier(client.NotifierFunc(func(msg string) {
			logger.Debug("request failed", zap.String("message", msg))
		})),
	)
	return a
}

// IsAuthenticated returns true if there is a token.
func (a *AuthState) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

// GetToken returns the current authentication token.
func (a *AuthState) GetToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Logout drops the token and user. The client calls it when the server
// answers 401.
func (a *AuthState) Logout() {
	a.Clear()
}

// GetUser returns the current authenticated user.
func (a *AuthState) GetUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// GetClient returns the API client. It reads the token from a on every
// request.
func (a *AuthState) GetClient() *client.Client {
	return a.client
}

// SetAuth updates the authentication state.
func (a *AuthState) SetAuth(token string, user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.user = user
}

// Clear removes the authentication state and forgets the conversation.
func (a *AuthState) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.user = nil
	a.conversation = ""
}

// Conversation returns the conversation id for the next question,
// starting one if none is active or fresh is set.
func (a *AuthState) Conversation(fresh bool) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if fresh || a.conversation == "" {
		a.conversation = uuid.NewString()
	}
	return a.conversation
}

// CurrentConversation returns the active conversation id, or "".
func (a *AuthState) CurrentConversation() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conversation
}

// SetConversation records the conversation id the server answered with.
func (a *AuthState) SetConversation(id string) {
	if id == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversation = id
}

// Login authenticates with username and password.
func (a *AuthState) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	env, err := a.client.Login(ctx, &models.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}
	if env.Data.Token == "" {
		return fmt.Errorf("login response carried no token")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = env.Data.Token
	a.user = env.Data.User
	a.conversation = ""
	return nil
}
