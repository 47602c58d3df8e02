package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/ramarlina/lqa-cli/pkg/apitest"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// mockRequest creates a CallToolRequest with the given arguments.
func mockRequest(name string, args map[string]any) mcplib.CallToolRequest {
	return mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// newTestHandlers starts a fake backend and returns handlers talking to it.
func newTestHandlers(t *testing.T) (*apitest.Server, *Handlers) {
	t.Helper()
	t.Setenv("LQA_TOKEN", "")

	srv := apitest.New()
	t.Cleanup(srv.Close)

	return srv, NewHandlers(NewAuthState(srv.URL, nil))
}

func login(h *Handlers) {
	h.auth.SetAuth("tok-1", &models.User{ID: 7, Username: "zhang", Nickname: "Zhang San"})
}

func TestHandleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("not authenticated", func(t *testing.T) {
		_, h := newTestHandlers(t)

		result, err := h.HandleStatus(ctx, mockRequest("legal_status", nil))
		if err != nil {
			t.Fatalf("HandleStatus() error = %v", err)
		}
		if text := getResultText(t, result); !strings.Contains(text, "Not authenticated") {
			t.Errorf("expected 'Not authenticated', got %q", text)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		_, h := newTestHandlers(t)
		login(h)

		result, _ := h.HandleStatus(ctx, mockRequest("legal_status", nil))
		text := getResultText(t, result)
		if !strings.Contains(text, "Zhang San") || !strings.Contains(text, "@zhang") {
			t.Errorf("got %q", text)
		}
	})
}

func TestHandleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Envelope("POST", "/api/auth/login", 200, "登录成功", map[string]any{
			"token": "jwt-abc",
			"user":  map[string]any{"id": 3, "username": "li", "userType": 1},
		})

		result, err := h.HandleLogin(ctx, mockRequest("legal_login", map[string]any{
			"username": "li",
			"password": "secret",
		}))
		if err != nil {
			t.Fatalf("HandleLogin() error = %v", err)
		}
		if isErrorResult(result) {
			t.Fatalf("unexpected error result: %s", getResultText(t, result))
		}

		if h.auth.GetToken() != "jwt-abc" {
			t.Errorf("token = %q", h.auth.GetToken())
		}
		if text := getResultText(t, result); !strings.Contains(text, "[admin]") {
			t.Errorf("got %q", text)
		}

		req, _ := srv.Last()
		var body models.LoginRequest
		json.Unmarshal(req.Body, &body)
		if body.Username != "li" || body.Password != "secret" {
			t.Errorf("login body = %+v", body)
		}
		if req.HasAuth {
			t.Error("login sent an Authorization header without a session")
		}
	})

	t.Run("rejected", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Envelope("POST", "/api/auth/login", 400, "用户名或密码错误", nil)

		result, _ := h.HandleLogin(ctx, mockRequest("legal_login", map[string]any{
			"username": "li",
			"password": "wrong",
		}))
		if !isErrorResult(result) {
			t.Fatal("expected error result")
		}
		if text := getResultText(t, result); !strings.Contains(text, "用户名或密码错误") {
			t.Errorf("got %q", text)
		}
		if h.auth.IsAuthenticated() {
			t.Error("failed login must not authenticate")
		}
	})

	t.Run("missing password", func(t *testing.T) {
		_, h := newTestHandlers(t)
		result, _ := h.HandleLogin(ctx, mockRequest("legal_login", map[string]any{"username": "li"}))
		if !isErrorResult(result) {
			t.Error("expected error result")
		}
	})
}

func TestHandleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("starts and keeps a conversation", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		login(h)
		srv.Envelope("POST", "/api/qa/ask", 200, "", map[string]any{
			"id":              11,
			"question":        "合同违约怎么办",
			"answer":          "可以要求继续履行或赔偿损失。",
			"confidenceScore": 0.82,
			"sessionId":       "s-1",
			"relatedLaws":     []map[string]any{{"id": 577, "title": "民法典", "articleNumber": "第五百七十七条", "content": "当事人一方不履行合同义务"}},
		})

		result, _ := h.HandleAsk(ctx, mockRequest("legal_ask", map[string]any{"question": "合同违约怎么办"}))
		if isErrorResult(result) {
			t.Fatalf("unexpected error: %s", getResultText(t, result))
		}

		text := getResultText(t, result)
		for _, want := range []string{"继续履行", "Answer ID: 11", "82%", "第五百七十七条"} {
			if !strings.Contains(text, want) {
				t.Errorf("answer missing %q:\n%s", want, text)
			}
		}

		req, _ := srv.Last()
		if req.Authorization != "Bearer tok-1" {
			t.Errorf("Authorization = %q", req.Authorization)
		}
		var body models.AskRequest
		json.Unmarshal(req.Body, &body)
		if body.SessionID == "" {
			t.Error("first question should carry a generated conversation id")
		}

		if got := h.auth.CurrentConversation(); got != "s-1" {
			t.Errorf("conversation = %q, want server's s-1", got)
		}

		h.HandleAsk(ctx, mockRequest("legal_ask", map[string]any{"question": "赔偿范围？"}))
		req, _ = srv.Last()
		json.Unmarshal(req.Body, &body)
		if body.SessionID != "s-1" {
			t.Errorf("follow-up sessionId = %q, want s-1", body.SessionID)
		}

		h.HandleAsk(ctx, mockRequest("legal_ask", map[string]any{"question": "另一个问题", "new_conversation": true}))
		req, _ = srv.Last()
		json.Unmarshal(req.Body, &body)
		if body.SessionID == "s-1" {
			t.Error("new_conversation should not reuse s-1")
		}
	})

	t.Run("401 clears the session", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		login(h)
		srv.Envelope("POST", "/api/qa/ask", 401, "登录已过期", nil)

		result, _ := h.HandleAsk(ctx, mockRequest("legal_ask", map[string]any{"question": "q"}))
		if !isErrorResult(result) {
			t.Fatal("expected error result")
		}
		if text := getResultText(t, result); !strings.Contains(text, "登录已过期") {
			t.Errorf("got %q", text)
		}
		if h.auth.IsAuthenticated() {
			t.Error("401 should log out")
		}
	})

	t.Run("empty question", func(t *testing.T) {
		_, h := newTestHandlers(t)
		result, _ := h.HandleAsk(ctx, mockRequest("legal_ask", map[string]any{"question": "  "}))
		if !isErrorResult(result) {
			t.Error("expected error result")
		}
	})
}

func TestHandleHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("requires login", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		result, _ := h.HandleHistory(ctx, mockRequest("legal_history", nil))
		if !isErrorResult(result) {
			t.Error("expected error result")
		}
		if len(srv.Requests()) != 0 {
			t.Error("no request should be sent without a session")
		}
	})

	t.Run("page", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		login(h)
		srv.Envelope("GET", "/api/qa/history", 200, "", map[string]any{
			"content": []map[string]any{
				{"id": 2, "question": "离婚财产如何分割", "answer": "原则上平均分配", "feedbackType": "helpful"},
			},
			"totalElements": 11,
			"totalPages":    2,
			"number":        1,
			"size":          10,
		})

		result, _ := h.HandleHistory(ctx, mockRequest("legal_history", map[string]any{"page": 1}))
		text := getResultText(t, result)
		if !strings.Contains(text, "Page 2 of 2") || !strings.Contains(text, "离婚财产如何分割") {
			t.Errorf("got %q", text)
		}

		req, _ := srv.Last()
		if req.RawQuery != "page=1&size=10" {
			t.Errorf("query = %q", req.RawQuery)
		}
	})
}

func TestHandleConversation(t *testing.T) {
	ctx := context.Background()
	srv, h := newTestHandlers(t)
	login(h)

	result, _ := h.HandleConversation(ctx, mockRequest("legal_conversation", nil))
	if !isErrorResult(result) {
		t.Error("expected error without an active conversation")
	}

	h.auth.SetConversation("s-9")
	srv.Envelope("GET", "/api/qa/conversation/s-9", 200, "", []map[string]any{
		{"id": 1, "question": "Q1", "answer": "A1"},
		{"id": 2, "question": "Q2", "answer": "A2"},
	})

	result, _ = h.HandleConversation(ctx, mockRequest("legal_conversation", nil))
	text := getResultText(t, result)
	if !strings.Contains(text, "Conversation s-9") || strings.Index(text, "Q1") > strings.Index(text, "Q2") {
		t.Errorf("got %q", text)
	}
}

func TestHandleFeedback(t *testing.T) {
	ctx := context.Background()
	srv, h := newTestHandlers(t)
	login(h)
	srv.Envelope("POST", "/api/qa/feedback", 200, "反馈成功", nil)

	result, _ := h.HandleFeedback(ctx, mockRequest("legal_feedback", map[string]any{"qa_id": 11, "type": "sideways"}))
	if !isErrorResult(result) {
		t.Error("expected error for invalid type")
	}

	result, _ = h.HandleFeedback(ctx, mockRequest("legal_feedback", map[string]any{"qa_id": 11, "type": "helpful"}))
	if isErrorResult(result) {
		t.Fatalf("unexpected error: %s", getResultText(t, result))
	}

	req, _ := srv.Last()
	var body models.Feedback
	json.Unmarshal(req.Body, &body)
	if body.QAID != 11 || body.FeedbackType != "helpful" {
		t.Errorf("feedback body = %+v", body)
	}
}

func TestHandleSearchArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		articles := make([]map[string]any, 25)
		for i := range articles {
			articles[i] = map[string]any{"id": i + 1, "title": "合同法", "content": fmt.Sprintf("条文 %d", i+1)}
		}
		srv.Envelope("GET", "/api/legal/article/search", 200, "", articles)

		result, _ := h.HandleSearchArticles(ctx, mockRequest("legal_search_articles", map[string]any{"keyword": "合同"}))
		text := getResultText(t, result)
		if !strings.Contains(text, "25 articles") || !strings.Contains(text, "... 5 more") {
			t.Errorf("got %q", text)
		}

		req, _ := srv.Last()
		if req.RawQuery != "keyword=%E5%90%88%E5%90%8C" {
			t.Errorf("query = %q", req.RawQuery)
		}
	})

	t.Run("law type", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Envelope("GET", "/api/legal/article/type/刑法", 200, "", []map[string]any{})

		result, _ := h.HandleSearchArticles(ctx, mockRequest("legal_search_articles", map[string]any{"law_type": "刑法"}))
		if text := getResultText(t, result); !strings.Contains(text, "No articles found") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("nothing to search", func(t *testing.T) {
		_, h := newTestHandlers(t)
		result, _ := h.HandleSearchArticles(ctx, mockRequest("legal_search_articles", nil))
		if !isErrorResult(result) {
			t.Error("expected error result")
		}
	})
}

func TestHandleArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Envelope("GET", "/api/legal/article/577", 200, "", map[string]any{
			"id": 577, "title": "民法典", "articleNumber": "第五百七十七条", "content": "当事人一方不履行合同义务", "lawType": "民法",
		})

		result, _ := h.HandleArticle(ctx, mockRequest("legal_article", map[string]any{"id": float64(577)}))
		text := getResultText(t, result)
		if !strings.Contains(text, "第五百七十七条") || !strings.Contains(text, "Law type: 民法") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Envelope("GET", "/api/legal/article/9", 404, "法条不存在", nil)

		result, _ := h.HandleArticle(ctx, mockRequest("legal_article", map[string]any{"id": 9}))
		if !isErrorResult(result) || !strings.Contains(getResultText(t, result), "法条不存在") {
			t.Errorf("expected envelope message in error result")
		}
	})

	t.Run("network error", func(t *testing.T) {
		srv, h := newTestHandlers(t)
		srv.Close()

		result, _ := h.HandleArticle(ctx, mockRequest("legal_article", map[string]any{"id": 1}))
		if !isErrorResult(result) {
			t.Error("expected error result")
		}
	})
}

func TestHandleCases(t *testing.T) {
	ctx := context.Background()
	srv, h := newTestHandlers(t)
	srv.Envelope("GET", "/api/legal/case/type/劳动争议", 200, "", []map[string]any{
		{"id": 4, "title": "王某诉某公司劳动合同纠纷", "courtName": "北京市朝阳区人民法院"},
	})
	srv.Envelope("GET", "/api/legal/case/4", 200, "", map[string]any{
		"id": 4, "title": "王某诉某公司劳动合同纠纷", "judgmentResult": "支付经济补偿金",
	})

	result, _ := h.HandleSearchCases(ctx, mockRequest("legal_search_cases", map[string]any{"case_type": "劳动争议"}))
	if text := getResultText(t, result); !strings.Contains(text, "北京市朝阳区人民法院") {
		t.Errorf("got %q", text)
	}

	result, _ = h.HandleCase(ctx, mockRequest("legal_case", map[string]any{"id": 4}))
	if text := getResultText(t, result); !strings.Contains(text, "Judgment: 支付经济补偿金") {
		t.Errorf("got %q", text)
	}
}

func TestHandleConcepts(t *testing.T) {
	ctx := context.Background()
	srv, h := newTestHandlers(t)
	concept := map[string]any{"id": 5, "name": "不可抗力", "definition": "不能预见、不能避免且不能克服的客观情况"}
	srv.Envelope("GET", "/api/legal/concept/search", 200, "", []map[string]any{concept})
	srv.Envelope("GET", "/api/legal/concept/5", 200, "", concept)
	srv.Envelope("GET", "/api/legal/concept/name/不可抗力", 200, "", concept)

	result, _ := h.HandleSearchConcepts(ctx, mockRequest("legal_search_concepts", map[string]any{"keyword": "抗力"}))
	if text := getResultText(t, result); !strings.Contains(text, "[5] 不可抗力") {
		t.Errorf("got %q", text)
	}

	result, _ = h.HandleConcept(ctx, mockRequest("legal_concept", map[string]any{"id": 5}))
	if text := getResultText(t, result); !strings.Contains(text, "不能预见") {
		t.Errorf("by id: got %q", text)
	}

	result, _ = h.HandleConcept(ctx, mockRequest("legal_concept", map[string]any{"name": "不可抗力"}))
	if isErrorResult(result) {
		t.Errorf("by name: %s", getResultText(t, result))
	}
	req, _ := srv.Last()
	if req.Path != "/api/legal/concept/name/不可抗力" {
		t.Errorf("path = %q", req.Path)
	}

	result, _ = h.HandleConcept(ctx, mockRequest("legal_concept", nil))
	if !isErrorResult(result) {
		t.Error("expected error without id or name")
	}
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}

	for _, content := range result.Content {
		if text, ok := content.(mcplib.TextContent); ok {
			return text.Text
		}
	}

	return fmt.Sprintf("unexpected content type: %T", result.Content)
}

func isErrorResult(result *mcplib.CallToolResult) bool {
	if result == nil {
		return false
	}
	return result.IsError
}
