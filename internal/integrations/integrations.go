// Package integrations holds what the three external adapters share: the
// system names, the per-system sync status, a normalized error taxonomy, the
// JSON transport and defensive response/pagination helpers.
package integrations

import (
	"errors"
	"fmt"
)

// System names one external SaaS the back office mirrors clients into.
type System string

const (
	SystemAccounting System = "accounting"
	SystemESign      System = "esign"
	SystemSubscriber System = "subscriber"
)

// Systems lists every integration in propagation order.
var Systems = []System{SystemESign, SystemAccounting, SystemSubscriber}

// SyncStatus is the per-system outcome reported after onboarding.
type SyncStatus string

const (
	StatusOK      SyncStatus = "ok"
	StatusFailed  SyncStatus = "failed"
	StatusSkipped SyncStatus = "skipped"
)

// ErrorKind is the normalized failure taxonomy shared by all adapters.
type ErrorKind string

const (
	// KindNotConfigured means the adapter has no credentials; no I/O was attempted.
	KindNotConfigured ErrorKind = "not_configured"
	// KindUpstreamUnavailable covers network errors, timeouts, auth failures and non-2xx answers.
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// KindNotFound means the upstream answered 404 or the lookup matched nothing.
	KindNotFound ErrorKind = "not_found"
	// KindBadResponse means a 2xx answer could not be understood.
	KindBadResponse ErrorKind = "bad_response"
)

// Sentinels usable with errors.Is against any *Error.
var (
	ErrNotConfigured       = errors.New("integration not configured")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNotFound            = errors.New("upstream record not found")
	ErrBadResponse         = errors.New("unexpected upstream response")
)

// snippetLimit bounds the response body kept on an error for logging.
const snippetLimit = 512

// Error wraps an adapter failure with the system it came from and, when the
// upstream answered, its HTTP status and a body snippet.
type Error struct {
	Kind       ErrorKind
	System     System
	Op         string
	HTTPStatus int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s [%s]", e.System, e.Op, e.Kind)
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf(" http %d", e.HTTPStatus)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps the error kind onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotConfigured:
		return e.Kind == KindNotConfigured
	case ErrUpstreamUnavailable:
		return e.Kind == KindUpstreamUnavailable
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrBadResponse:
		return e.Kind == KindBadResponse
	}
	return false
}

// NotConfigured is returned by every operation of an adapter without credentials.
func NotConfigured(system System, op string) *Error {
	return &Error{Kind: KindNotConfigured, System: system, Op: op}
}

// NotFound builds a not-found error for lookups that matched nothing.
func NotFound(system System, op string) *Error {
	return &Error{Kind: KindNotFound, System: system, Op: op}
}

// BadResponse wraps a decoding failure of a successful answer.
func BadResponse(system System, op string, body []byte, err error) *Error {
	return &Error{Kind: KindBadResponse, System: system, Op: op, Body: Snippet(body), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain. Errors that did
// not come from an adapter count as upstream failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamUnavailable
}

// HTTPStatusOf returns the upstream HTTP status carried by err, if any.
func HTTPStatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return 0
}

// BodyOf returns the upstream body snippet carried by err, if any.
func BodyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Body
	}
	return ""
}

// Snippet truncates an upstream body for logs and error values.
func Snippet(body []byte) string {
	if len(body) > snippetLimit {
		return string(body[:snippetLimit]) + "..."
	}
	return string(body)
}
