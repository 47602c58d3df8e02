package client

import (
	"context"
	"net/http"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/models"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*api.Envelope[models.AuthResult], error) {
	return call[models.AuthResult](ctx, c, endpoint{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   req,
	})
}

// Register creates an account and returns a session token for it.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*api.Envelope[models.AuthResult], error) {
	return call[models.AuthResult](ctx, c, endpoint{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	})
}
