package client

import (
	"context"
	"net/http"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// SearchArticles finds statute articles matching q.
func (c *Client) SearchArticles(ctx context.Context, q Query) (*api.Envelope[[]models.Article], error) {
	return call[[]models.Article](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/legal/article/search",
		query:  q.params(),
	})
}

// GetArticlesByType lists the articles of one law type.
func (c *Client) GetArticlesByType(ctx context.Context, lawType string) (*api.Envelope[[]models.Article], error) {
	return call[[]models.Article](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/article/type/{lawType}",
		pathParams: map[string]string{"lawType": lawType},
	})
}

// GetArticleByID fetches one article.
func (c *Client) GetArticleByID(ctx context.Context, id int64) (*api.Envelope[models.Article], error) {
	return call[models.Article](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/article/{id}",
		pathParams: idParam(id),
	})
}

// GetAllArticles lists every article.
func (c *Client) GetAllArticles(ctx context.Context) (*api.Envelope[[]models.Article], error) {
	return call[[]models.Article](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/legal/article/all",
	})
}

// SearchCases finds cases matching q.
func (c *Client) SearchCases(ctx context.Context, q Query) (*api.Envelope[[]models.Case], error) {
	return call[[]models.Case](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/legal/case/search",
		query:  q.params(),
	})
}

// GetCasesByType lists the cases of one law type.
func (c *Client) GetCasesByType(ctx context.Context, lawType string) (*api.Envelope[[]models.Case], error) {
	return call[[]models.Case](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/case/type/{lawType}",
		pathParams: map[string]string{"lawType": lawType},
	})
}

// GetCaseByID fetches one case.
func (c *Client) GetCaseByID(ctx context.Context, id int64) (*api.Envelope[models.Case], error) {
	return call[models.Case](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/case/{id}",
		pathParams: idParam(id),
	})
}

// SearchConcepts finds concepts matching q.
func (c *Client) SearchConcepts(ctx context.Context, q Query) (*api.Envelope[[]models.Concept], error) {
	return call[[]models.Concept](ctx, c, endpoint{
		method: http.MethodGet,
		path:   "/legal/concept/search",
		query:  q.params(),
	})
}

// GetConceptByName fetches a concept by its exact name.
func (c *Client) GetConceptByName(ctx context.Context, name string) (*api.Envelope[models.Concept], error) {
	return call[models.Concept](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/concept/name/{name}",
		pathParams: map[string]string{"name": name},
	})
}

// GetConceptByID fetches one concept.
func (c *Client) GetConceptByID(ctx context.Context, id int64) (*api.Envelope[models.Concept], error) {
	return call[models.Concept](ctx, c, endpoint{
		method:     http.MethodGet,
		path:       "/legal/concept/{id}",
		pathParams: idParam(id),
	})
}
