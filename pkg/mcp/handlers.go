package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

const (
	defaultLimit    = 20
	maxLimit        = 100
	defaultPageSize = 10
)

// Handlers contains all tool handlers for the legal QA MCP server.
type Handlers struct {
	auth *AuthState
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *AuthState) *Handlers {
	return &Handlers{auth: auth}
}

func clampLimit(n int) int {
	if n < 1 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func notAuthenticated() *mcp.CallToolResult {
	return mcp.NewToolResultError("Not authenticated. Use legal_login to authenticate.")
}

// === Authentication Handlers ===

// HandleLogin handles the legal_login tool.
func (h *Handlers) HandleLogin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError("username is required"), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError("password is required"), nil
	}

	if err := h.auth.Login(ctx, username, password); err != nil {
		return mcp.NewToolResultErrorFromErr("Login failed", err), nil
	}

	return mcp.NewToolResultText(FormatUser(h.auth.GetUser()) + "\nSession active."), nil
}

// HandleStatus handles the legal_status tool.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.auth.IsAuthenticated() {
		return mcp.NewToolResultText("Not authenticated. Use legal_login to authenticate."), nil
	}

	user := h.auth.GetUser()
	if user == nil {
		return mcp.NewToolResultText("Authenticated with a preconfigured token."), nil
	}
	return mcp.NewToolResultText("Authenticated as " + FormatUser(user)), nil
}

// === Question Answering Handlers ===

// HandleAsk handles the legal_ask tool.
func (h *Handlers) HandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question is required"), nil
	}

	sessionID := h.auth.Conversation(req.GetBool("new_conversation", false))

	env, err := h.auth.GetClient().AskQuestion(ctx, &models.AskRequest{
		Question:  question,
		SessionID: sessionID,
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to get an answer", err), nil
	}

	h.auth.SetConversation(env.Data.SessionID)
	return mcp.NewToolResultText(FormatAnswer(&env.Data)), nil
}

// HandleHistory handles the legal_history tool.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.auth.IsAuthenticated() {
		return notAuthenticated(), nil
	}

	page := req.GetInt("page", 0)
	if page < 0 {
		page = 0
	}
	size := req.GetInt("size", defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxLimit {
		size = maxLimit
	}

	env, err := h.auth.GetClient().GetQuestionHistory(ctx, client.Query{Page: page, Size: size})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to fetch history", err), nil
	}

	return mcp.NewToolResultText(FormatHistory(&env.Data)), nil
}

// HandleConversation handles the legal_conversation tool.
func (h *Handlers) HandleConversation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.auth.IsAuthenticated() {
		return notAuthenticated(), nil
	}

	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		sessionID = h.auth.CurrentConversation()
	}
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required when no conversation is active"), nil
	}

	env, err := h.auth.GetClient().GetConversationHistory(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to fetch conversation", err), nil
	}

	return mcp.NewToolResultText(FormatConversation(sessionID, env.Data)), nil
}

// HandleFeedback handles the legal_feedback tool.
func (h *Handlers) HandleFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.auth.IsAuthenticated() {
		return notAuthenticated(), nil
	}

	qaID := req.GetInt("qa_id", 0)
	if qaID <= 0 {
		return mcp.NewToolResultError("qa_id is required"), nil
	}
	fbType := req.GetString("type", "")
	if fbType != models.FeedbackHelpful && fbType != models.FeedbackUnhelpful {
		return mcp.NewToolResultError("type must be helpful or unhelpful"), nil
	}

	if _, err := h.auth.GetClient().SubmitFeedback(ctx, &models.Feedback{
		QAID:         int64(qaID),
		FeedbackType: fbType,
	}); err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to submit feedback", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Feedback recorded for answer %d.", qaID)), nil
}

// === Legal Library Handlers ===

// HandleSearchArticles handles the legal_search_articles tool.
func (h *Handlers) HandleSearchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := strings.TrimSpace(req.GetString("keyword", ""))
	lawType := strings.TrimSpace(req.GetString("law_type", ""))
	limit := clampLimit(req.GetInt("limit", defaultLimit))

	c := h.auth.GetClient()
	var (
		articles []models.Article
		label    string
	)
	switch {
	case keyword != "":
		env, err := c.SearchArticles(ctx, client.Query{Keyword: keyword})
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Search failed", err), nil
		}
		articles, label = env.Data, fmt.Sprintf("matching %q", keyword)
	case lawType != "":
		env, err := c.GetArticlesByType(ctx, lawType)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Failed to fetch articles", err), nil
		}
		articles, label = env.Data, "of type "+lawType
	default:
		return mcp.NewToolResultError("keyword or law_type is required"), nil
	}

	return mcp.NewToolResultText(FormatArticleList(articles, label, limit)), nil
}

// HandleArticle handles the legal_article tool.
func (h *Handlers) HandleArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	env, err := h.auth.GetClient().GetArticleByID(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to fetch article", err), nil
	}

	return mcp.NewToolResultText(FormatArticle(&env.Data)), nil
}

// HandleSearchCases handles the legal_search_cases tool.
func (h *Handlers) HandleSearchCases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := strings.TrimSpace(req.GetString("keyword", ""))
	caseType := strings.TrimSpace(req.GetString("case_type", ""))
	limit := clampLimit(req.GetInt("limit", defaultLimit))

	c := h.auth.GetClient()
	var (
		cases []models.Case
		label string
	)
	switch {
	case keyword != "":
		env, err := c.SearchCases(ctx, client.Query{Keyword: keyword})
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Search failed", err), nil
		}
		cases, label = env.Data, fmt.Sprintf("matching %q", keyword)
	case caseType != "":
		env, err := c.GetCasesByType(ctx, caseType)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Failed to fetch cases", err), nil
		}
		cases, label = env.Data, "of type "+caseType
	default:
		return mcp.NewToolResultError("keyword or case_type is required"), nil
	}

	return mcp.NewToolResultText(FormatCaseList(cases, label, limit)), nil
}

// HandleCase handles the legal_case tool.
func (h *Handlers) HandleCase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	env, err := h.auth.GetClient().GetCaseByID(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to fetch case", err), nil
	}

	return mcp.NewToolResultText(FormatCase(&env.Data)), nil
}

// HandleSearchConcepts handles the legal_search_concepts tool.
func (h *Handlers) HandleSearchConcepts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil || strings.TrimSpace(keyword) == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}
	limit := clampLimit(req.GetInt("limit", defaultLimit))

	env, err := h.auth.GetClient().SearchConcepts(ctx, client.Query{Keyword: strings.TrimSpace(keyword)})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Search failed", err), nil
	}

	return mcp.NewToolResultText(FormatConceptList(env.Data, fmt.Sprintf("matching %q", keyword), limit)), nil
}

// HandleConcept handles the legal_concept tool.
func (h *Handlers) HandleConcept(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := h.auth.GetClient()

	if id := req.GetInt("id", 0); id > 0 {
		env, err := c.GetConceptByID(ctx, int64(id))
		if err != nil {
			return mcp.NewToolResultErrorFromErr("Failed to fetch concept", err), nil
		}
		return mcp.NewToolResultText(FormatConcept(&env.Data)), nil
	}

	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("id or name is required"), nil
	}
	env, err := c.GetConceptByName(ctx, name)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("Failed to fetch concept", err), nil
	}
	return mcp.NewToolResultText(FormatConcept(&env.Data)), nil
}
