package exception

import (
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is a declared error: it carries the status code and detail sent
// to the client, plus optional extra data and response headers.
type HTTPError struct {
	Kind    string
	Status  int
	Detail  string
	Extra   any
	Headers http.Header
	cause   error
}

// Option configures an HTTPError.
type Option func(*HTTPError)

// WithExtra attaches extra payload emitted under "extra".
func WithExtra(extra any) Option { return func(e *HTTPError) { e.Extra = extra } }

// WithHeaders attaches response headers.
func WithHeaders(h http.Header) Option { return func(e *HTTPError) { e.Headers = h.Clone() } }

// WithCause records the underlying error for errors.Is/As.
func WithCause(err error) Option { return func(e *HTTPError) { e.cause = err } }

// WithKind overrides the kind name used in GoString.
func WithKind(kind string) Option { return func(e *HTTPError) { e.Kind = kind } }

// NewHTTP builds an HTTPError. A zero status means 500; an empty detail means
// the canonical status text.
func NewHTTP(status int, detail string, opts ...Option) *HTTPError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	e := &HTTPError{Kind: "HTTPError", Status: status, Detail: detail}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Error renders "<status>: <detail>" with the separator trimmed when detail
// is empty.
func (e *HTTPError) Error() string {
	return strings.TrimSuffix(strings.TrimSpace(fmt.Sprintf("%d: %s", e.Status, e.Detail)), ":")
}

// GoString renders "<status> - <Kind> - <detail>", or just the kind when
// detail is empty.
func (e *HTTPError) GoString() string {
	if e.Detail == "" {
		return e.ErrorKind()
	}
	return fmt.Sprintf("%d - %s - %s", e.Status, e.ErrorKind(), e.Detail)
}

// StatusCode implements StatusCoder.
func (e *HTTPError) StatusCode() int { return e.Status }

// ErrorKind implements Kinder.
func (e *HTTPError) ErrorKind() string {
	if e.Kind == "" {
		return "HTTPError"
	}
	return e.Kind
}

func (e *HTTPError) Unwrap() error { return e.cause }

func kinded(kind string, status int, detail string, opts []Option) *HTTPError {
	return NewHTTP(status, detail, append([]Option{WithKind(kind)}, opts...)...)
}

// ImproperlyConfigured reports an application misconfiguration (500).
func ImproperlyConfigured(detail string, opts ...Option) *HTTPError {
	return kinded("ImproperlyConfigured", http.StatusInternalServerError, detail, opts)
}

// Validation reports invalid client input (400).
func Validation(detail string, opts ...Option) *HTTPError {
	return kinded("Validation", http.StatusBadRequest, detail, opts)
}

// NotAuthorized reports missing or invalid credentials (401).
func NotAuthorized(detail string, opts ...Option) *HTTPError {
	return kinded("NotAuthorized", http.StatusUnauthorized, detail, opts)
}

// PermissionDenied reports insufficient permissions (403).
func PermissionDenied(detail string, opts ...Option) *HTTPError {
	return kinded("PermissionDenied", http.StatusForbidden, detail, opts)
}

// NotFound reports a missing resource (404).
func NotFound(detail string, opts ...Option) *HTTPError {
	return kinded("NotFound", http.StatusNotFound, detail, opts)
}

// MethodNotAllowed reports an unsupported method (405).
func MethodNotAllowed(detail string, opts ...Option) *HTTPError {
	return kinded("MethodNotAllowed", http.StatusMethodNotAllowed, detail, opts)
}

// TooManyRequests reports rate limiting (429).
func TooManyRequests(detail string, opts ...Option) *HTTPError {
	return kinded("TooManyRequests", http.StatusTooManyRequests, detail, opts)
}

// InternalServer reports an unexpected server failure (500).
func InternalServer(detail string, opts ...Option) *HTTPError {
	return kinded("InternalServer", http.StatusInternalServerError, detail, opts)
}

// ServiceUnavailable reports a temporarily unavailable dependency (503).
func ServiceUnavailable(detail string, opts ...Option) *HTTPError {
	return kinded("ServiceUnavailable", http.StatusServiceUnavailable, detail, opts)
}
