package mcp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ramarlina/lqa-cli/pkg/models"
)

const snippetLen = 80

// snippet shortens s to one line of at most n runes.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

// FormatUser formats a user for text display.
func FormatUser(user *models.User) string {
	if user == nil {
		return "[User not found]"
	}

	line := fmt.Sprintf("%s (@%s, ID %d)", user.DisplayName(), user.Username, user.ID)
	if user.IsAdmin() {
		line += " [admin]"
	}
	return line
}

// FormatArticle formats a statute article for text display.
func FormatArticle(a *models.Article) string {
	if a == nil {
		return "[Article not found]"
	}

	var lines []string

	head := a.Title
	if a.ArticleNumber != "" {
		head += " " + a.ArticleNumber
	}
	lines = append(lines, fmt.Sprintf("%s (ID %d)", head, a.ID))

	if a.LawType != "" {
		lines = append(lines, "Law type: "+a.LawType)
	}
	if a.Chapter != "" {
		lines = append(lines, "Chapter: "+a.Chapter)
	}

	if a.Content != "" {
		lines = append(lines, "", a.Content)
	} else {
		lines = append(lines, "", "[No content]")
	}

	if a.Keywords != "" {
		lines = append(lines, "", "Keywords: "+a.Keywords)
	}

	return strings.Join(lines, "\n")
}

// FormatArticleCompact formats an article on one line.
func FormatArticleCompact(a models.Article) string {
	head := a.Title
	if a.ArticleNumber != "" {
		head += " " + a.ArticleNumber
	}
	return fmt.Sprintf("[%d] %s: %s", a.ID, head, snippet(a.Content, snippetLen))
}

// FormatCase formats a judged case for text display.
func FormatCase(c *models.Case) string {
	if c == nil {
		return "[Case not found]"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s (ID %d)", c.Title, c.ID))

	if c.CaseType != "" {
		lines = append(lines, "Case type: "+c.CaseType)
	}
	if c.CourtName != "" {
		lines = append(lines, "Court: "+c.CourtName)
	}
	if c.JudgeDate != "" {
		lines = append(lines, "Judged: "+c.JudgeDate)
	}
	if c.Content != "" {
		lines = append(lines, "", c.Content)
	}
	if c.DisputePoint != "" {
		lines = append(lines, "", "Dispute: "+c.DisputePoint)
	}
	if c.JudgmentResult != "" {
		lines = append(lines, "Judgment: "+c.JudgmentResult)
	}

	return strings.Join(lines, "\n")
}

// FormatCaseCompact formats a case on one line.
func FormatCaseCompact(c models.Case) string {
	line := fmt.Sprintf("[%d] %s", c.ID, c.Title)
	if c.CourtName != "" {
		line += " (" + c.CourtName + ")"
	}
	return line
}

// FormatConcept formats a legal concept for text display.
func FormatConcept(c *models.Concept) string {
	if c == nil {
		return "[Concept not found]"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s (ID %d)", c.Name, c.ID))

	if c.Category != "" {
		lines = append(lines, "Category: "+c.Category)
	}
	lines = append(lines, "", c.Definition)
	if c.RelatedLaws != "" {
		lines = append(lines, "", "Related laws: "+c.RelatedLaws)
	}
	if c.Examples != "" {
		lines = append(lines, "Examples: "+c.Examples)
	}

	return strings.Join(lines, "\n")
}

// FormatConceptCompact formats a concept on one line.
func FormatConceptCompact(c models.Concept) string {
	return fmt.Sprintf("[%d] %s: %s", c.ID, c.Name, snippet(c.Definition, snippetLen))
}

func formatList[T any](kind, label string, items []T, limit int, line func(T) string) string {
	if len(items) == 0 {
		return fmt.Sprintf("No %s found %s.", kind, label)
	}

	shown := items
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %d %s %s ===\n", len(items), kind, label)
	for _, item := range shown {
		sb.WriteString(line(item))
		sb.WriteString("\n")
	}
	if len(shown) < len(items) {
		fmt.Fprintf(&sb, "... %d more\n", len(items)-len(shown))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatArticleList formats search results for articles.
func FormatArticleList(articles []models.Article, label string, limit int) string {
	return formatList("articles", label, articles, limit, FormatArticleCompact)
}

// FormatCaseList formats search results for cases.
func FormatCaseList(cases []models.Case, label string, limit int) string {
	return formatList("cases", label, cases, limit, FormatCaseCompact)
}

// FormatConceptList formats search results for concepts.
func FormatConceptList(concepts []models.Concept, label string, limit int) string {
	return formatList("concepts", label, concepts, limit, FormatConceptCompact)
}

// FormatAnswer formats an answered question with its sources.
func FormatAnswer(r *models.AskResult) string {
	if r == nil {
		return "[No answer]"
	}

	var lines []string
	lines = append(lines, r.Answer, "")

	meta := fmt.Sprintf("Answer ID: %d | Confidence: %.0f%%", r.ID, r.ConfidenceScore*100)
	if r.QuestionType != "" {
		meta += " | Type: " + r.QuestionType
	}
	lines = append(lines, meta)

	if len(r.Entities) > 0 {
		kinds := make([]string, 0, len(r.Entities))
		for k := range r.Entities {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			lines = append(lines, fmt.Sprintf("%s: %s", k, strings.Join(r.Entities[k], ", ")))
		}
	}

	if len(r.RelatedLaws) > 0 {
		lines = append(lines, "", "=== Related Laws ===")
		for _, a := range r.RelatedLaws {
			lines = append(lines, FormatArticleCompact(a))
		}
	}
	if len(r.RelatedCases) > 0 {
		lines = append(lines, "", "=== Related Cases ===")
		for _, c := range r.RelatedCases {
			lines = append(lines, FormatCaseCompact(c))
		}
	}

	if r.SessionID != "" {
		lines = append(lines, "", "Conversation: "+r.SessionID)
	}

	return strings.Join(lines, "\n")
}

// FormatQA formats a stored question/answer record compactly.
func FormatQA(qa models.QuestionAnswer) string {
	line := fmt.Sprintf("[%d] Q: %s\n    A: %s", qa.ID, snippet(qa.Question, snippetLen), snippet(qa.Answer, snippetLen))
	if qa.FeedbackType != "" {
		line += " (" + qa.FeedbackType + ")"
	}
	return line
}

// FormatHistory formats one page of question history.
func FormatHistory(page *models.Page[models.QuestionAnswer]) string {
	if page == nil || len(page.Content) == 0 {
		return "No questions asked yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Page %d of %d (%d questions) ===\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
	for _, qa := range page.Content {
		sb.WriteString(FormatQA(qa))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatConversation formats every exchange of one conversation in order.
func FormatConversation(sessionID string, records []models.QuestionAnswer) string {
	if len(records) == 0 {
		return fmt.Sprintf("Conversation %s has no questions.", sessionID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Conversation %s ===\n", sessionID)
	for i, qa := range records {
		fmt.Fprintf(&sb, "\n--- %d ---\nQ: %s\nA: %s\n", i+1, qa.Question, qa.Answer)
	}
	return strings.TrimRight(sb.String(), "\n")
}
