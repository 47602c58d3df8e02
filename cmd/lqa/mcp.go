package main

import (
	"github.com/spf13/cobra"

	"github.com/ramarlina/lqa-cli/pkg/config"
	"github.com/ramarlina/lqa-cli/pkg/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP (Model Context Protocol) server",
	Long: `Run an MCP server that exposes legal QA to AI assistants over stdio.

Available tools:
  Authentication:
    legal_login            - Log in with username and password
    legal_status           - Check authentication status

  Question answering:
    legal_ask              - Ask a question (follow-ups share a conversation)
    legal_history          - List past questions
    legal_conversation     - Show a whole conversation
    legal_feedback         - Rate an answer

  Legal library:
    legal_search_articles  - Search statute articles
    legal_article          - Get one article
    legal_search_cases     - Search judged cases
    legal_case             - Get one case
    legal_search_concepts  - Search legal concepts
    legal_concept          - Get one concept by id or name

Environment variables:
  LQA_API_URL     - Server root (default: the api_url setting)
  LQA_TOKEN       - Pre-authenticated token (skip login)
  LQA_CONFIG_DIR  - Custom config directory

Example MCP configuration:
  {
    "mcpServers": {
      "legal": {
        "command": "lqa",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer(config.GetAPIUrl(), logger)
		return srv.ServeContext(cmd.Context())
	},
}
