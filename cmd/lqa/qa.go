package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/context"
	"github.com/ramarlina/lqa-cli/pkg/models"
	"github.com/ramarlina/lqa-cli/pkg/output"
)

var (
	flagNewConversation bool
	flagPage            int
	flagSize            int
)

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(conversationCmd)
	rootCmd.AddCommand(feedbackCmd)

	askCmd.Flags().BoolVar(&flagNewConversation, "new", false, "Start a new conversation")
	historyCmd.Flags().IntVar(&flagPage, "page", 0, "Zero-based page number")
	historyCmd.Flags().IntVar(&flagSize, "size", 10, "Page size")
}

var askCmd = &cobra.Command{
	Use:   "ask <question...|->",
	Short: "Ask a legal question",
	Long: `Ask a legal question. Follow-up questions share a conversation until
--new is given or an hour passes. Use '-' to read the question from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()

		question := strings.Join(args, " ")
		if question == "-" {
			data, err := readInput("-", os.Stdin)
			if err != nil {
				return err
			}
			question = string(data)
		}
		question = strings.TrimSpace(question)
		if question == "" {
			return fmt.Errorf("question cannot be empty")
		}

		sessionID := context.Conversation()
		if flagNewConversation || sessionID == "" {
			id, err := context.NewConversation()
			if err != nil {
				return err
			}
			sessionID = id
		}

		env, err := getClient(out).AskQuestion(cmd.Context(), &models.AskRequest{
			Question:  question,
			SessionID: sessionID,
		})
		if err != nil {
			return err
		}

		res := env.Data
		if res.SessionID != "" && res.SessionID != sessionID {
			context.SetConversation(res.SessionID)
		}
		if res.ID > 0 {
			context.Set(strconv.FormatInt(res.ID, 10), context.TypeQA)
		}

		if out.IsJSON() {
			return out.Envelope(env)
		}
		printAnswer(out, &res)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List questions you asked",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		if err := requireSession(); err != nil {
			return err
		}

		env, err := getClient(out).GetQuestionHistory(cmd.Context(), client.Query{
			Page: flagPage,
			Size: flagSize,
		})
		if err != nil {
			return err
		}

		if out.IsJSON() {
			return out.Envelope(env)
		}

		page := env.Data
		if len(page.Content) == 0 {
			out.Println("No questions asked yet")
			return nil
		}

		rows := make([][]string, 0, len(page.Content))
		for _, qa := range page.Content {
			rows = append(rows, []string{
				strconv.FormatInt(qa.ID, 10),
				truncate(qa.Question, 40),
				qa.FeedbackType,
				qa.CreateTime,
			})
		}
		if out.IsRaw() {
			for _, r := range rows {
				out.Printf("%s\t%s\n", r[0], r[1])
			}
			return nil
		}
		out.Table([]string{"ID", "Question", "Feedback", "Asked"}, rows)
		out.Printf("\nPage %d of %d (%d total)\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
		return nil
	},
}

var conversationCmd = &cobra.Command{
	Use:   "conversation [session-id]",
	Short: "Show a whole conversation",
	Long:  "Show every question and answer of a conversation, the current one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		if err := requireSession(); err != nil {
			return err
		}

		sessionID := context.Conversation()
		if len(args) == 1 {
			sessionID = args[0]
		}
		if sessionID == "" {
			return fmt.Errorf("no active conversation (pass a session id)")
		}

		env, err := getClient(out).GetConversationHistory(cmd.Context(), sessionID)
		if err != nil {
			return err
		}

		if out.IsJSON() {
			return out.Envelope(env)
		}

		if len(env.Data) == 0 {
			out.Printf("Conversation %s has no questions\n", sessionID)
			return nil
		}
		for i, qa := range env.Data {
			if i > 0 {
				out.Println()
			}
			out.Printf("[%d] Q: %s\n", qa.ID, qa.Question)
			out.Printf("A: %s\n", qa.Answer)
		}
		return nil
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <qa-id|this> <helpful|unhelpful>",
	Short: "Rate an answer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		if err := requireSession(); err != nil {
			return err
		}

		id, err := context.ResolveID(args[0], context.TypeQA)
		if err != nil {
			return err
		}
		fbType := strings.ToLower(args[1])
		if fbType != models.FeedbackHelpful && fbType != models.FeedbackUnhelpful {
			return fmt.Errorf("feedback must be %s or %s", models.FeedbackHelpful, models.FeedbackUnhelpful)
		}

		env, err := getClient(out).SubmitFeedback(cmd.Context(), &models.Feedback{
			QAID:         id,
			FeedbackType: fbType,
		})
		if err != nil {
			return err
		}

		if out.IsJSON() {
			return out.Envelope(env)
		}
		out.Printf("Feedback recorded for answer %d\n", id)
		return nil
	},
}

func printAnswer(out *output.Printer, res *models.AskResult) {
	out.Println(res.Answer)
	if out.IsRaw() {
		return
	}

	out.Println()
	meta := fmt.Sprintf("answer %d  confidence %.0f%%", res.ID, res.ConfidenceScore*100)
	if res.QuestionType != "" {
		meta += "  type " + res.QuestionType
	}
	out.Println(meta)

	if len(res.Entities) > 0 {
		kinds := make([]string, 0, len(res.Entities))
		for k := range res.Entities {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			out.Printf("%s: %s\n", k, strings.Join(res.Entities[k], ", "))
		}
	}

	if len(res.RelatedLaws) > 0 {
		out.Println("\nRelated laws:")
		for _, a := range res.RelatedLaws {
			out.Printf("  [%d] %s %s\n", a.ID, a.Title, a.ArticleNumber)
		}
	}
	if len(res.RelatedCases) > 0 {
		out.Println("\nRelated cases:")
		for _, c := range res.RelatedCases {
			out.Printf("  [%d] %s\n", c.ID, c.Title)
		}
	}
}
