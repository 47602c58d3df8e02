package client

import (
	"errors"

	"github.com/ramarlina/lqa-cli/pkg/api"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindBuild means the request could not be constructed and was never sent.
	KindBuild Kind = iota + 1
	// KindTransport covers network errors, timeouts, non-2xx statuses and
	// unreadable bodies.
	KindTransport
	// KindApplication means the envelope carried a code other than 200.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindBuild:
		return "build"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Error is returned by every endpoint method on failure.
// Code is the envelope code for application errors and the HTTP status
// (0 when no response arrived) otherwise.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsUnauthorized reports whether err is an application error for an
// expired or invalid session.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindApplication && e.Code == api.CodeUnauthorized
}
