package client

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ramarlina/lqa-cli/pkg/api"
)

// endpoint describes one HTTP exchange relative to BasePath.
type endpoint struct {
	method     string
	path       string
	pathParams map[string]string
	query      map[string]string
	body       any
}

// authorize is the outbound hook. It runs before every request is sent.
func (c *Client) authorize(_ *req.Client, r *req.Request) error {
	if c.session == nil {
		return nil
	}
	token := c.session.GetToken()
	if token == "" {
		return nil
	}
	if strings.ContainsAny(token, "\r\n") {
		return &Error{
			Kind:    KindBuild,
			Message: "invalid session token",
			Err:     errors.New("token contains a line break"),
		}
	}
	r.SetHeader("Authorization", "Bearer "+token)
	return nil
}

// call sends e and decodes the envelope data into T.
func call[T any](ctx context.Context, c *Client, e endpoint) (*api.Envelope[T], error) {
	raw, err := c.exchange(ctx, e)
	if err != nil {
		return nil, err
	}

	env := &api.Envelope[T]{Code: raw.Code, Message: raw.Message}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, c.transportFailure(e, 0, errors.Wrap(err, "decode response data"))
		}
	}
	return env, nil
}

// exchange sends e and runs the inbound interception. A nil error means
// the envelope code was 200.
func (c *Client) exchange(ctx context.Context, e endpoint) (*api.Envelope[json.RawMessage], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	r := c.http.R().SetContext(ctx)
	if len(e.pathParams) > 0 {
		r.SetPathParams(e.pathParams)
	}
	if len(e.query) > 0 {
		r.SetQueryParams(e.query)
	}
	if e.body != nil {
		body, err := json.Marshal(e.body)
		if err != nil {
			return nil, c.buildFailure(e, &Error{
				Kind:    KindBuild,
				Message: "invalid request body",
				Err:     errors.Wrap(err, "encode request body"),
			})
		}
		r.SetBodyJsonBytes(body)
	}

	c.logger.Debug("sending request", zap.String("method", e.method), zap.String("path", e.path))
	resp, err := r.Send(e.method, e.path)
	return c.intercept(e, resp, err)
}

// intercept interprets a completed exchange.
func (c *Client) intercept(e endpoint, resp *req.Response, err error) (*api.Envelope[json.RawMessage], error) {
	if err != nil {
		var built *Error
		if errors.As(err, &built) && built.Kind == KindBuild {
			return nil, c.buildFailure(e, built)
		}
		return nil, c.transportFailure(e, 0, err)
	}

	status := resp.GetStatusCode()
	if !resp.IsSuccessState() {
		return nil, c.transportFailure(e, status,
			errors.Errorf("request failed with status code %d", status))
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, c.transportFailure(e, status, errors.Wrap(err, "read response body"))
	}

	// A success status without an envelope has no code, so it fails like
	// any non-200 envelope.
	var env api.Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Warn("undecodable envelope",
			zap.String("path", e.path),
			zap.Int("status", status),
			zap.Error(err))
		env = api.Envelope[json.RawMessage]{}
	}

	if !env.OK() {
		return nil, c.reject(e, &env)
	}
	return &env, nil
}

// buildFailure logs and surfaces a request that was never sent.
func (c *Client) buildFailure(e endpoint, built *Error) error {
	c.logger.Error("request error",
		zap.String("method", e.method),
		zap.String("path", e.path),
		zap.Error(built.Err))

	msg := built.Message
	if msg == "" {
		msg = api.MsgNetworkError
	}
	c.notifier.Notify(msg)
	return built
}

// transportFailure logs and surfaces a failure that happened below the
// envelope layer.
func (c *Client) transportFailure(e endpoint, status int, err error) error {
	c.logger.Error("response error",
		zap.String("method", e.method),
		zap.String("path", e.path),
		zap.Int("status", status),
		zap.Error(err))

	msg := err.Error()
	if msg == "" {
		msg = api.MsgNetworkError
	}
	c.notifier.Notify(msg)

	return &Error{Kind: KindTransport, Code: status, Message: msg, Err: err}
}

// reject surfaces an envelope whose code is not 200. A 401 additionally
// ends the session.
func (c *Client) reject(e endpoint, env *api.Envelope[json.RawMessage]) error {
	msg := env.MessageOr(api.MsgRequestFailed)
	c.notifier.Notify(msg)

	if env.Code == api.CodeUnauthorized && c.session != nil {
		c.logger.Info("session rejected, logging out", zap.String("path", e.path))
		c.session.Logout()
	}

	c.logger.Debug("application error",
		zap.String("method", e.method),
		zap.String("path", e.path),
		zap.Int("code", env.Code),
		zap.String("message", msg))

	return &Error{Kind: KindApplication, Code: env.Code, Message: msg}
}
