package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/context"
	"github.com/ramarlina/lqa-cli/pkg/models"
	"github.com/ramarlina/lqa-cli/pkg/output"
)

func init() {
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(conceptCmd)

	articleCmd.AddCommand(articleSearchCmd, articleTypeCmd, articleGetCmd, articleAllCmd)
	caseCmd.AddCommand(caseSearchCmd, caseTypeCmd, caseGetCmd)
	conceptCmd.AddCommand(conceptSearchCmd, conceptNameCmd, conceptGetCmd)
}

// === Articles ===

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Browse statute articles",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var articleSearchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Search articles by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).SearchArticles(cmd.Context(), client.Query{Keyword: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printArticles(out, env.Data)
		return nil
	},
}

var articleTypeCmd = &cobra.Command{
	Use:   "type <law-type>",
	Short: "List articles of one law type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetArticlesByType(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printArticles(out, env.Data)
		return nil
	},
}

var articleAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every article",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetAllArticles(cmd.Context())
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printArticles(out, env.Data)
		return nil
	},
}

var articleGetCmd = &cobra.Command{
	Use:   "get <id|this>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		id, err := context.ResolveID(args[0], context.TypeArticle)
		if err != nil {
			return err
		}

		env, err := getClient(out).GetArticleByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		context.Set(strconv.FormatInt(id, 10), context.TypeArticle)

		if out.IsJSON() {
			return out.Envelope(env)
		}

		a := env.Data
		out.Printf("%s %s\n", a.Title, a.ArticleNumber)
		if !out.IsRaw() {
			if a.LawType != "" {
				out.Printf("Law type: %s\n", a.LawType)
			}
			if a.Chapter != "" {
				out.Printf("Chapter: %s\n", a.Chapter)
			}
			out.Println()
		}
		out.Println(a.Content)
		return nil
	},
}

func printArticles(out *output.Printer, articles []models.Article) {
	if len(articles) == 0 {
		out.Println("No articles found")
		return
	}
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			strings.TrimSpace(a.Title + " " + a.ArticleNumber),
			a.LawType,
			truncate(a.Content, 40),
		})
	}
	printRows(out, []string{"ID", "Article", "Law type", "Content"}, rows)
}

// === Cases ===

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Browse judged cases",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var caseSearchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Search cases by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).SearchCases(cmd.Context(), client.Query{Keyword: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printCases(out, env.Data)
		return nil
	},
}

var caseTypeCmd = &cobra.Command{
	Use:   "type <case-type>",
	Short: "List cases of one type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetCasesByType(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printCases(out, env.Data)
		return nil
	},
}

var caseGetCmd = &cobra.Command{
	Use:   "get <id|this>",
	Short: "Show one case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		id, err := context.ResolveID(args[0], context.TypeCase)
		if err != nil {
			return err
		}

		env, err := getClient(out).GetCaseByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		context.Set(strconv.FormatInt(id, 10), context.TypeCase)

		if out.IsJSON() {
			return out.Envelope(env)
		}

		c := env.Data
		out.Println(c.Title)
		if !out.IsRaw() {
			for _, f := range [][2]string{
				{"Case type", c.CaseType},
				{"Court", c.CourtName},
				{"Judged", c.JudgeDate},
			} {
				if f[1] != "" {
					out.Printf("%s: %s\n", f[0], f[1])
				}
			}
		}
		if c.Content != "" {
			out.Printf("\n%s\n", c.Content)
		}
		if c.DisputePoint != "" {
			out.Printf("\nDispute: %s\n", c.DisputePoint)
		}
		if c.JudgmentResult != "" {
			out.Printf("Judgment: %s\n", c.JudgmentResult)
		}
		return nil
	},
}

func printCases(out *output.Printer, cases []models.Case) {
	if len(cases) == 0 {
		out.Println("No cases found")
		return
	}
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			truncate(c.Title, 40),
			c.CaseType,
			c.CourtName,
		})
	}
	printRows(out, []string{"ID", "Title", "Type", "Court"}, rows)
}

// === Concepts ===

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Look up legal concepts",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var conceptSearchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Search concepts by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).SearchConcepts(cmd.Context(), client.Query{Keyword: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		if len(env.Data) == 0 {
			out.Println("No concepts found")
			return nil
		}
		rows := make([][]string, 0, len(env.Data))
		for _, c := range env.Data {
			rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, truncate(c.Definition, 50)})
		}
		printRows(out, []string{"ID", "Name", "Definition"}, rows)
		return nil
	},
}

var conceptNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Show a concept by its exact name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		env, err := getClient(out).GetConceptByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if env.Data.ID > 0 {
			context.Set(strconv.FormatInt(env.Data.ID, 10), context.TypeConcept)
		}
		if out.IsJSON() {
			return out.Envelope(env)
		}
		printConcept(out, &env.Data)
		return nil
	},
}

var conceptGetCmd = &cobra.Command{
	Use:   "get <id|this>",
	Short: "Show one concept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()
		id, err := context.ResolveID(args[0], context.TypeConcept)
		if err != nil {
			return err
		}

		env, err := getClient(out).GetConceptByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		context.Set(strconv.FormatInt(id, 10), context.TypeConcept)

		if out.IsJSON() {
			return out.Envelope(env)
		}
		printConcept(out, &env.Data)
		return nil
	},
}

func printConcept(out *output.Printer, c *models.Concept) {
	out.Println(c.Name)
	if c.Category != "" && !out.IsRaw() {
		out.Printf("Category: %s\n", c.Category)
	}
	out.Printf("\n%s\n", c.Definition)
	if c.RelatedLaws != "" {
		out.Printf("\nRelated laws: %s\n", c.RelatedLaws)
	}
	if c.Examples != "" {
		out.Printf("Examples: %s\n", c.Examples)
	}
}

// printRows prints a table, or tab-separated lines in raw mode.
func printRows(out *output.Printer, headers []string, rows [][]string) {
	if out.IsRaw() {
		for _, r := range rows {
			out.Println(strings.Join(r, "\t"))
		}
		return
	}
	out.Table(headers, rows)
}
