package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/session"
)

var (
	flagAdminKeyword  string
	flagAdminCategory string
)

func init() {
	rootCmd.AddCommand(adminCmd)

	knowledgeCmd := adminResource("knowledge", "knowledge entry",
		(*client.Client).CreateKnowledge,
		(*client.Client).UpdateKnowledge,
		(*client.Client).DeleteKnowledge,
	)
	knowledgeCmd.AddCommand(adminKnowledgeLsCmd)
	adminKnowledgeLsCmd.Flags().StringVar(&flagAdminKeyword, "keyword", "", "Filter by keyword")
	adminKnowledgeLsCmd.Flags().StringVar(&flagAdminCategory, "category", "", "Filter by category")
	adminKnowledgeLsCmd.Flags().IntVar(&flagPage, "page", 0, "Zero-based page number")
	adminKnowledgeLsCmd.Flags().IntVar(&flagSize, "size", 10, "Page size")

	adminQACmd.Flags().IntVar(&flagPage, "page", 0, "Zero-based page number")
	adminQACmd.Flags().IntVar(&flagSize, "size", 10, "Page size")

	adminCmd.AddCommand(
		knowledgeCmd,
		adminResource("article", "article",
			(*client.Client).CreateArticle,
			(*client.Client).UpdateArticle,
			(*client.Client).DeleteArticle,
		),
		adminResource("case", "case",
			(*client.Client).CreateCase,
			(*client.Client).UpdateCase,
			(*client.Client).DeleteCase,
		),
		adminResource("concept", "concept",
			(*client.Client).CreateConcept,
			(*client.Client).UpdateConcept,
			(*client.Client).DeleteConcept,
		),
		adminStatsCmd,
		adminQACmd,
	)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the knowledge base (admin accounts only)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if err := requireSession(); err != nil {
			return err
		}
		if user := session.GetUser(); user != nil && !user.IsAdmin() {
			return fmt.Errorf("%s is not an admin account", user.DisplayName())
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// adminResource builds the add/update/rm commands for one resource.
func adminResource[T any](
	name, noun string,
	create func(*client.Client, context.Context, *T) (*api.Envelope[T], error),
	update func(*client.Client, context.Context, int64, *T) (*api.Envelope[T], error),
	remove func(*client.Client, context.Context, int64) (*api.Envelope[any], error),
) *cobra.Command {
	parent := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %ss", noun),
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Create a %s from JSON", noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := getOutputPrinter()
			file, _ := cmd.Flags().GetString("file")

			var v T
			if err := decodeInput(file, os.Stdin, &v); err != nil {
				return err
			}
			env, err := create(getClient(out), cmd.Context(), &v)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.Envelope(env)
			}
			out.Printf("Created %s\n", noun)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Replace a %s with JSON", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := getOutputPrinter()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")

			var v T
			if err := decodeInput(file, os.Stdin, &v); err != nil {
				return err
			}
			env, err := update(getClient(out), cmd.Context(), id, &v)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.Envelope(env)
			}
			out.Printf("Updated %s %d\n", noun, id)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: fmt.Sprintf("Delete a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := getOutputPrinter()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !confirm(out, fmt.Sprintf("Delete %s %d?", noun, id)) {
				return nil
			}
			env, err := remove(getClient(out), cmd.Context(), id)
			if err != nil {
				return err
			}
			if out.IsJSON() {
				return out.Envelope(env)
			}
			out.Printf("Deleted %s %d\n", noun, id)
			return nil
		},
	}

	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().StringP("file", "f", "", "JSON file to read (default stdin)")
	}
	parent.AddCommand(addCmd, updateCmd, rmCmd)
	return parent
}

var adminKnowledgeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List knowledge entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetKnowledge(cmd.Context(), client.Query{
			Keyword:  flagAdminKeyword,
			Category: flagAdminCategory,
			Page:     flagPage,
			Size:     flagSize,
		})
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}

		page := env.Data
		if len(page.Content) == 0 {
			out.Println("No knowledge entries found")
			return nil
		}
		rows := make([][]string, 0, len(page.Content))
		for _, k := range page.Content {
			rows = append(rows, []string{strconv.FormatInt(k.ID, 10), k.Category, truncate(k.Question, 50)})
		}
		printRows(out, []string{"ID", "Category", "Question"}, rows)
		if !out.IsRaw() {
			out.Printf("\nPage %d of %d (%d total)\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
		}
		return nil
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetStats(cmd.Context())
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}

		s := env.Data
		rows := [][]string{
			{"Users", strconv.FormatInt(s.UserCount, 10)},
			{"Questions", strconv.FormatInt(s.QuestionCount, 10)},
			{"Questions today", strconv.FormatInt(s.TodayQuestions, 10)},
			{"Articles", strconv.FormatInt(s.ArticleCount, 10)},
			{"Cases", strconv.FormatInt(s.CaseCount, 10)},
			{"Concepts", strconv.FormatInt(s.ConceptCount, 10)},
			{"Knowledge", strconv.FormatInt(s.KnowledgeCount, 10)},
		}
		types := make([]string, 0, len(s.QuestionTypes))
		for t := range s.QuestionTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			rows = append(rows, []string{"  " + t, strconv.FormatInt(s.QuestionTypes[t], 10)})
		}
		printRows(out, []string{"Metric", "Count"}, rows)
		return nil
	},
}

var adminQACmd = &cobra.Command{
	Use:   "qa",
	Short: "List question records of all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetQARecords(cmd.Context(), client.Query{Page: flagPage, Size: flagSize})
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}

		page := env.Data
		if len(page.Content) == 0 {
			out.Println("No question records")
			return nil
		}
		rows := make([][]string, 0, len(page.Content))
		for _, qa := range page.Content {
			user := "-"
			if qa.UserID != nil {
				user = strconv.FormatInt(*qa.UserID, 10)
			}
			rows = append(rows, []string{
				strconv.FormatInt(qa.ID, 10),
				user,
				truncate(qa.Question, 40),
				fmt.Sprintf("%.2f", qa.ConfidenceScore),
				qa.FeedbackType,
			})
		}
		printRows(out, []string{"ID", "User", "Question", "Confidence", "Feedback"}, rows)
		return nil
	},
}
