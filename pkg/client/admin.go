package client

import (
	"context"
	"net/http"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// Admin resource paths.
const (
	adminKnowledge = "/admin/knowledge"
	adminArticle   = "/admin/article"
	adminCase      = "/admin/case"
	adminConcept   = "/admin/concept"
)

func create[T any](ctx context.Context, c *Client, base string, v *T) (*api.Envelope[T], error) {
	return call[T](ctx, c, endpoint{method: http.MethodPost, path: base, body: v})
}

func update[T any](ctx context.Context, c *Client, base string, id int64, v *T) (*api.Envelope[T], error) {
	return call[T](ctx, c, endpoint{
		method:     http.MethodPut,
		path:       base + "/{id}",
		pathParams: idParam(id),
		body:       v,
	})
}

func remove(ctx context.Context, c *Client, base string, id int64) (*api.Envelope[any], error) {
	return call[any](ctx, c, endpoint{
		method:     http.MethodDelete,
		path:       base + "/{id}",
		pathParams: idParam(id),
	})
}

// GetKnowledge lists knowledge-base entries.
func (c *Client) GetKnowledge(ctx context.Context, q Query) (*api.Envelope[models.Page[models.Knowledge]], error) {
	return call[models.Page[models.Knowledge]](ctx, c, endpoint{
		method: http.MethodGet,
		path:   adminKnowledge,
		query:  q.params(),
	})
}

func (c *Client) CreateKnowledge(ctx context.Context, k *models.Knowledge) (*api.Envelope[models.Knowledge], error) {
	return create(ctx, c, adminKnowledge, k)
}

func (c *Client) UpdateKnowledge(ctx context.Context, id int64, k *models.Knowledge) (*api.Envelope[models.Knowledge], error) {
	return update(ctx, c, adminKnowledge, id, k)
}

func (c *Client) DeleteKnowledge(ctx context.Context, id int64) (*api.Envelope[any], error) {
	return remove(ctx, c, adminKnowledge, id)
}

func (c *Client) CreateArticle(ctx context.Context, a *models.Article) (*api.Envelope[models.Article], error) {
	return create(ctx, c, adminArticle, a)
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, a *models.Article) (*api.Envelope[models.Article], error) {
	return update(ctx, c, adminArticle, id, a)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) (*api.Envelope[any], error) {
	return remove(ctx, c, adminArticle, id)
}

func (c *Client) CreateCase(ctx context.Context, cs *models.Case) (*api.Envelope[models.Case], error) {
	return create(ctx, c, adminCase, cs)
}

func (c *Client) UpdateCase(ctx context.Context, id int64, cs *models.Case) (*api.Envelope[models.Case], error) {
	return update(ctx, c, adminCase, id, cs)
}

func (c *Client) DeleteCase(ctx context.Context, id int64) (*api.Envelope[any], error) {
	return remove(ctx, c, adminCase, id)
}

func (c *Client) CreateConcept(ctx context.Context, cp *models.Concept) (*api.Envelope[models.Concept], error) {
	return create(ctx, c, adminConcept, cp)
}

func (c *Client) UpdateConcept(ctx context.Context, id int64, cp *models.Concept) (*api.Envelope[models.Concept], error) {
	return update(ctx, c, adminConcept, id, cp)
}

func (c *Client) DeleteConcept(ctx context.Context, id int64) (*api.Envelope[any], error) {
	return remove(ctx, c, adminConcept, id)
}

// GetStats returns the admin dashboard summary.
func (c *Client) GetStats(ctx context.Context) (*api.Envelope[models.Stats], error) {
	return call[models.Stats](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/admin/stats",
	})
}

// GetQARecords lists all users' question/answer records.
func (c *Client) GetQARecords(ctx context.Context, q Query) (*api.Envelope[models.Page[models.QuestionAnswer]], error) {
	return call[models.Page[models.QuestionAnswer]](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/admin/qa",
		query:  q.params(),
	})
}
