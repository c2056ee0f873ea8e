// Package exception provides the error kinds a service raises at its HTTP
// boundary and translates any error into a JSON-ready response payload.
//
// Overview
//   - Error: generic base error built with NewPlain(detail) or NewCoded(code, detail).
//   - HTTPError: declared error carrying status, detail and optional extra data.
//   - Classify: closes the open error space into Declared | Upstream | Undeclared.
//   - Translate: maps any error into Translated{status_code, detail, extra}.
//
// Translation is pure: it never logs, retries or mutates the error it reads.
package exception

import (
	"fmt"
	"strconv"
)

// Error is the generic, non-HTTP base error.
type Error struct {
	Kind   string
	Code   int // Meaningful only when built with NewCoded.
	Detail string
	cause  error
	coded  bool
}

// NewPlain builds an Error whose display string is detail.
func NewPlain(detail string) *Error {
	return &Error{Kind: "Error", Detail: detail}
}

// NewCoded builds an Error whose display string is "<code> <detail>".
func NewCoded(code int, detail string) *Error {
	return &Error{Kind: "Error", Code: code, Detail: detail, coded: true}
}

func (e *Error) Error() string {
	if e.coded {
		if e.Detail == "" {
			return strconv.Itoa(e.Code)
		}
		return strconv.Itoa(e.Code) + " " + e.Detail
	}
	return e.Detail
}

// GoString renders "<Kind> - <detail>", or just the kind when detail is empty.
func (e *Error) GoString() string {
	if e.Detail == "" {
		return e.kind()
	}
	return fmt.Sprintf("%s - %s", e.kind(), e.Detail)
}

// Unwrap returns the cause attached with Wrap.
func (e *Error) Unwrap() error { return e.cause }

// Wrap attaches cause and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// ErrorKind implements Kinder.
func (e *Error) ErrorKind() string { return e.kind() }

func (e *Error) kind() string {
	if e.Kind == "" {
		return "Error"
	}
	return e.Kind
}

// MissingDependency reports a package that must be installed for a feature.
// installVia names the extra to install when it differs from pkg.
func MissingDependency(pkg string, installVia ...string) *Error {
	via := pkg
	if len(installVia) > 0 && installVia[0] != "" {
		via = installVia[0]
	}
	return &Error{
		Kind: "MissingDependency",
		Detail: fmt.Sprintf(
			"Package '%s' is not installed but required. You can install it by running 'go get %s'",
			pkg, via),
	}
}
