// Package models defines shared types used across the CLI and the MCP server.
package models

// User represents a user account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	UserType int    `json:"userType"`
}

// User types.
const (
	UserTypeRegular = 0
	UserTypeAdmin   = 1
)

// IsAdmin reports whether the user may call the admin endpoints.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

// DisplayName returns the nickname, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Page mirrors a server-side paged result.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	UserCount      int64            `json:"userCount"`
	QuestionCount  int64            `json:"questionCount"`
	TodayQuestions int64            `json:"todayQuestions"`
	ArticleCount   int64            `json:"articleCount"`
	CaseCount      int64            `json:"caseCount"`
	ConceptCount   int64            `json:"conceptCount"`
	KnowledgeCount int64            `json:"knowledgeCount"`
	QuestionTypes  map[string]int64 `json:"questionTypes,omitempty"`
}
