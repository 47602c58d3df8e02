package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ramarlina/lqa-cli/pkg/config"
)

const (
	// ServerName is the name of the MCP server.
	ServerName = "lqa-mcp"
	// ServerVersion is the version of the MCP server.
	ServerVersion = "0.1.0"
)

// Server wraps the MCP server with the legal QA tools.
type Server struct {
	mcpServer *server.MCPServer
	auth      *AuthState
	handlers  *Handlers
}

// NewServer creates a new MCP server talking to apiURL. An empty apiURL
// falls back to LQA_API_URL, then config.DefaultAPIURL.
func NewServer(apiURL string, logger *zap.Logger) *Server {
	if apiURL == "" {
		apiURL = os.Getenv("LQA_API_URL")
	}
	if apiURL == "" {
		apiURL = config.DefaultAPIURL
	}

	auth := NewAuthState(apiURL, logger)
	handlers := NewHandlers(auth)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		auth:      auth,
		handlers:  handlers,
	}

	s.registerTools()

	return s
}

// handlerFor maps a tool name to its handler.
func (s *Server) handlerFor(name string) server.ToolHandlerFunc {
	h := s.handlers
	switch name {
	case "legal_login":
		return h.HandleLogin
	case "legal_status":
		return h.HandleStatus
	case "legal_ask":
		return h.HandleAsk
	case "legal_history":
		return h.HandleHistory
	case "legal_conversation":
		return h.HandleConversation
	case "legal_feedback":
		return h.HandleFeedback
	case "legal_search_articles":
		return h.HandleSearchArticles
	case "legal_article":
		return h.HandleArticle
	case "legal_search_cases":
		return h.HandleSearchCases
	case "legal_case":
		return h.HandleCase
	case "legal_search_concepts":
		return h.HandleSearchConcepts
	case "legal_concept":
		return h.HandleConcept
	}
	return nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	for _, tool := range ToolDefinitions() {
		if fn := s.handlerFor(tool.Name); fn != nil {
			s.mcpServer.AddTool(tool, fn)
		}
	}
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeContext starts the MCP server on stdio with a context.
func (s *Server) ServeContext(ctx context.Context) error {
	return server.ServeStdio(s.mcpServer, server.WithStdioContextFunc(func(_ context.Context) context.Context {
		return ctx
	}))
}

// GetMCPServer returns the underlying MCP server for testing.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// GetAuthState returns the authentication state for testing.
func (s *Server) GetAuthState() *AuthState {
	return s.auth
}
