// Package client provides an API client for the legal QA backend.
//
// All endpoint methods share one configured HTTP client. An outbound hook
// attaches the session token and every reply is checked against the
// response envelope before it reaches the caller.
package client

import (
	"strings"
	"sync"
	"time"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

const (
	// BasePath prefixes every endpoint path.
	BasePath = "/api"
	// DefaultTimeout is the ceiling applied to every request.
	DefaultTimeout = 30 * time.Second
)

// SessionProvider exposes the shared session state the client needs.
// Logout must be idempotent.
type SessionProvider interface {
	GetToken() string
	Logout()
}

// Notifier surfaces failure messages to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) {
	f(message)
}

// Client is an HTTP client for the legal QA API.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *req.Client
	session  SessionProvider
	notifier Notifier
	logger   *zap.Logger
}

// Option configures the client.
type Option func(*Client)

// New creates a new API client. baseURL is the server root; BasePath is
// appended to it.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  DefaultTimeout,
		notifier: NotifierFunc(func(string) {}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = req.C().
		SetBaseURL(c.baseURL+BasePath).
		SetTimeout(c.timeout).
		SetUserAgent("lqa-cli").
		OnBeforeRequest(c.authorize)

	return c
}

// WithToken authenticates every request with a fixed token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.session = &staticSession{token: token}
	}
}

// WithSession reads the token from, and reports logouts to, sp.
func WithSession(sp SessionProvider) Option {
	return func(c *Client) {
		c.session = sp
	}
}

// WithNotifier sets where failure messages are surfaced.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the token the next request would carry.
func (c *Client) Token() string {
	if c.session == nil {
		return ""
	}
	return c.session.GetToken()
}

type staticSession struct {
	mu    sync.RWMutex
	token string
}

func (s *staticSession) GetToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *staticSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
