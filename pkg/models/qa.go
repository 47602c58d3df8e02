package models

// AskRequest is the body of POST /qa/ask. An empty SessionID lets the
// server start a new conversation.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId,omitempty"`
}

// AskResult is the answer produced for a question.
type AskResult struct {
	ID              int64               `json:"id"`
	Question        string              `json:"question"`
	Answer          string              `json:"answer"`
	QuestionType    string              `json:"questionType,omitempty"`
	ConfidenceScore float64             `json:"confidenceScore"`
	Entities        map[string][]string `json:"entities,omitempty"`
	RelatedLaws     []Article           `json:"relatedLaws,omitempty"`
	RelatedCases    []Case              `json:"relatedCases,omitempty"`
	SessionID       string              `json:"sessionId"`
}

// QuestionAnswer is a stored question/answer record.
type QuestionAnswer struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	Question        string  `json:"question"`
	Answer          string  `json:"answer"`
	QuestionType    string  `json:"questionType,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Entities        string  `json:"entities,omitempty"`
	RelatedLaws     string  `json:"relatedLaws,omitempty"`
	RelatedCases    string  `json:"relatedCases,omitempty"`
	SessionID       string  `json:"sessionId,omitempty"`
	IsFeedback      bool    `json:"isFeedback"`
	FeedbackType    string  `json:"feedbackType,omitempty"`
	CreateTime      string  `json:"createTime,omitempty"`
}

// Feedback is the body of POST /qa/feedback.
type Feedback struct {
	QAID         int64  `json:"qaId"`
	FeedbackType string `json:"feedbackType"`
}

// Feedback types.
const (
	FeedbackHelpful   = "helpful"
	FeedbackUnhelpful = "unhelpful"
)
