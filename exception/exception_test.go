package exception_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/reoring/dtokit/exception"
)

func TestError_DisplayAndRepr(t *testing.T) {
	if got := exception.NewPlain("an unknown exception occurred").Error(); got != "an unknown exception occurred" {
		t.Fatalf("plain display = %q", got)
	}
	if got := exception.NewCoded(200, "an unknown exception occurred").Error(); got != "200 an unknown exception occurred" {
		t.Fatalf("coded display = %q", got)
	}
	if got := exception.NewCoded(0, "x").Error(); got != "0 x" {
		t.Fatalf("coded display with zero code = %q", got)
	}
	if got := fmt.Sprintf("%#v", exception.NewPlain("detail")); got != "Error - detail" {
		t.Fatalf("repr = %q", got)
	}
	if got := fmt.Sprintf("%#v", exception.NewPlain("")); got != "Error" {
		t.Fatalf("repr without detail = %q", got)
	}
}

func TestError_WrapUnwrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := exception.NewPlain("read body").Wrap(cause)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestHTTPError_Strings(t *testing.T) {
	if got := exception.NewHTTP(0, "message").Error(); got != "500: message" {
		t.Fatalf("display = %q", got)
	}
	for status := 400; status <= 404; status++ {
		e := exception.NewHTTP(status, "detail")
		if got, want := e.GoString(), fmt.Sprintf("%d - HTTPError - detail", status); got != want {
			t.Fatalf("repr = %q, want %q", got, want)
		}
		if got, want := e.Error(), fmt.Sprintf("%d: detail", status); got != want {
			t.Fatalf("display = %q, want %q", got, want)
		}
	}
	bare := &exception.HTTPError{Status: 418}
	if got := bare.Error(); got != "418" {
		t.Fatalf("display without detail = %q", got)
	}
	if got := bare.GoString(); got != "HTTPError" {
		t.Fatalf("repr without detail = %q", got)
	}
}

func TestHTTPError_Kinds(t *testing.T) {
	tests := []struct {
		err    *exception.HTTPError
		kind   string
		status int
	}{
		{exception.ImproperlyConfigured(""), "ImproperlyConfigured", http.StatusInternalServerError},
		{exception.Validation(""), "Validation", http.StatusBadRequest},
		{exception.NotAuthorized(""), "NotAuthorized", http.StatusUnauthorized},
		{exception.PermissionDenied(""), "PermissionDenied", http.StatusForbidden},
		{exception.NotFound(""), "NotFound", http.StatusNotFound},
		{exception.MethodNotAllowed(""), "MethodNotAllowed", http.StatusMethodNotAllowed},
		{exception.TooManyRequests(""), "TooManyRequests", http.StatusTooManyRequests},
		{exception.InternalServer(""), "InternalServer", http.StatusInternalServerError},
		{exception.ServiceUnavailable(""), "ServiceUnavailable", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		if tt.err.Status != tt.status || tt.err.ErrorKind() != tt.kind {
			t.Fatalf("%s: got %d/%s", tt.kind, tt.err.Status, tt.err.ErrorKind())
		}
		want := fmt.Sprintf("%d - %s - %s", tt.status, tt.kind, http.StatusText(tt.status))
		if got := tt.err.GoString(); got != want {
			t.Fatalf("repr = %q, want %q", got, want)
		}
	}
}

func TestHTTPError_Options(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "10")
	cause := errors.New("redis down")
	e := exception.ServiceUnavailable("later", exception.WithHeaders(h), exception.WithCause(cause), exception.WithExtra(map[string]any{"retry": true}))
	h.Set("Retry-After", "99")
	if e.Headers.Get("Retry-After") != "10" {
		t.Fatalf("headers must be copied")
	}
	if !errors.Is(e, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if e.Extra == nil {
		t.Fatalf("extra not set")
	}
}

func TestMissingDependency(t *testing.T) {
	want := "Package 'some_package' is not installed but required. You can install it by running 'go get some_package'"
	if got := exception.MissingDependency("some_package").Error(); got != want {
		t.Fatalf("got %q", got)
	}
	want = "Package 'some_package' is not installed but required. You can install it by running 'go get install_via_this'"
	if got := exception.MissingDependency("some_package", "install_via_this").Error(); got != want {
		t.Fatalf("got %q", got)
	}
}
