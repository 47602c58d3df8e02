package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolDefinitions returns all tool definitions for the legal QA MCP server.
func ToolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		// Authentication
		toolLogin(),
		toolStatus(),

		// Question answering
		toolAsk(),
		toolHistory(),
		toolConversation(),
		toolFeedback(),

		// Legal library
		toolSearchArticles(),
		toolArticle(),
		toolSearchCases(),
		toolCase(),
		toolSearchConcepts(),
		toolConcept(),
	}
}

// === Authentication Tools ===

func toolLogin() mcp.Tool {
	return mcp.NewTool("legal_login",
		mcp.WithDescription("Log in to the legal QA service. Required before asking questions or reading history."),
		mcp.WithString("username",
			mcp.Description("Account username"),
			mcp.Required(),
		),
		mcp.WithString("password",
			mcp.Description("Account password"),
			mcp.Required(),
		),
	)
}

func toolStatus() mcp.Tool {
	return mcp.NewTool("legal_status",
		mcp.WithDescription("Check authentication status"),
	)
}

// === Question Answering Tools ===

func toolAsk() mcp.Tool {
	return mcp.NewTool("legal_ask",
		mcp.WithDescription(`Ask a legal question and get an answer with the statutes and cases it relied on.

Questions asked in a row share one conversation so follow-ups keep their context. Set new_conversation to start over.`),
		mcp.WithString("question",
			mcp.Description("The question, in plain language"),
			mcp.Required(),
		),
		mcp.WithBoolean("new_conversation",
			mcp.Description("Start a new conversation (default: false)"),
		),
	)
}

func toolHistory() mcp.Tool {
	return mcp.NewTool("legal_history",
		mcp.WithDescription("List previously asked questions, newest first"),
		mcp.WithNumber("page",
			mcp.Description("Zero-based page number (default 0)"),
		),
		mcp.WithNumber("size",
			mcp.Description("Page size (default 10, max 100)"),
		),
	)
}

func toolConversation() mcp.Tool {
	return mcp.NewTool("legal_conversation",
		mcp.WithDescription("Show every question and answer of one conversation"),
		mcp.WithString("session_id",
			mcp.Description("Conversation id (defaults to the current conversation)"),
		),
	)
}

func toolFeedback() mcp.Tool {
	return mcp.NewTool("legal_feedback",
		mcp.WithDescription("Rate an answer"),
		mcp.WithNumber("qa_id",
			mcp.Description("ID of the answered question"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Feedback type"),
			mcp.Required(),
			mcp.Enum("helpful", "unhelpful"),
		),
	)
}

// === Legal Library Tools ===

func toolSearchArticles() mcp.Tool {
	return mcp.NewTool("legal_search_articles",
		mcp.WithDescription("Search statute articles by keyword, or list one law type"),
		mcp.WithString("keyword",
			mcp.Description("Keyword to search for"),
		),
		mcp.WithString("law_type",
			mcp.Description("Restrict to a law type such as 民法 or 刑法 (used when keyword is empty)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to show (default 20, max 100)"),
		),
	)
}

func toolArticle() mcp.Tool {
	return mcp.NewTool("legal_article",
		mcp.WithDescription("Get one statute article"),
		mcp.WithNumber("id",
			mcp.Description("Article ID"),
			mcp.Required(),
		),
	)
}

func toolSearchCases() mcp.Tool {
	return mcp.NewTool("legal_search_cases",
		mcp.WithDescription("Search judged cases by keyword, or list one case type"),
		mcp.WithString("keyword",
			mcp.Description("Keyword to search for"),
		),
		mcp.WithString("case_type",
			mcp.Description("Restrict to a case type (used when keyword is empty)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to show (default 20, max 100)"),
		),
	)
}

func toolCase() mcp.Tool {
	return mcp.NewTool("legal_case",
		mcp.WithDescription("Get one judged case"),
		mcp.WithNumber("id",
			mcp.Description("Case ID"),
			mcp.Required(),
		),
	)
}

func toolSearchConcepts() mcp.Tool {
	return mcp.NewTool("legal_search_concepts",
		mcp.WithDescription("Search legal concepts by keyword"),
		mcp.WithString("keyword",
			mcp.Description("Keyword to search for"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to show (default 20, max 100)"),
		),
	)
}

func toolConcept() mcp.Tool {
	return mcp.NewTool("legal_concept",
		mcp.WithDescription("Get one legal concept by ID or by exact name"),
		mcp.WithNumber("id",
			mcp.Description("Concept ID"),
		),
		mcp.WithString("name",
			mcp.Description("Concept name (used when id is not given)"),
		),
	)
}
