// Package api defines the response envelope shared by every backend reply.
package api

// Envelope wraps all API responses.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// Envelope codes.
const (
	CodeOK           = 200
	CodeUnauthorized = 401
)

// Fallback messages used when the server or transport gives none.
const (
	MsgRequestFailed = "request failed"
	MsgNetworkError  = "network error"
)

// OK reports whether the envelope denotes success.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Code == CodeOK
}

// MessageOr returns the envelope message, or fallback when it is empty.
func (e *Envelope[T]) MessageOr(fallback string) string {
	if e == nil || e.Message == "" {
		return fallback
	}
	return e.Message
}
