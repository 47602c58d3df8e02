package client

import (
	"context"
	"net/http"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// AskQuestion submits a question, optionally within an existing conversation.
func (c *Client) AskQuestion(ctx context.Context, req *models.AskRequest) (*api.Envelope[models.AskResult], error) {
	return call[models.AskResult](ctx, c, endpoint{
		method: http.MethodPost,
		path:   "/qa/ask",
		body:   req,
	})
}

// GetQuestionHistory lists the current user's past questions.
func (c *Client) GetQuestionHistory(ctx context.Context, q Query) (*api.Envelope[models.Page[models.QuestionAnswer]], error) {
	return call[models.Page[models.QuestionAnswer]](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/qa/history",
		query:  q.params(),
	})
}

// GetConversationHistory returns every exchange of one conversation.
func (c *Client) GetConversationHistory(ctx context.Context, sessionID string) (*api.Envelope[[]models.QuestionAnswer], error) {
	return call[[]models.QuestionAnswer](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/qa/conversation/{sessionId}",
		pathParams: map[string]string{"sessionId": sessionID},
	})
}

// SubmitFeedback rates an answer.
func (c *Client) SubmitFeedback(ctx context.Context, fb *models.Feedback) (*api.Envelope[any], error) {
	return call[any](ctx, c, endpoint{
		method: http.MethodPost,
		path:   "/qa/feedback",
		body:   fb,
	})
}
