// Package middleware adapts the exception translator and field selection to
// net/http handlers.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/reoring/dtokit"
	"github.com/reoring/dtokit/config"
	"github.com/reoring/dtokit/exception"
)

// ctxKeyDirection is a typed context key for storing the request Direction.
type ctxKeyDirection struct{}

// ContextWithDirection attaches a Direction to the context.
func ContextWithDirection(ctx context.Context, d dtokit.Direction) context.Context {
	return context.WithValue(ctx, ctxKeyDirection{}, d)
}

// DirectionFromContext retrieves the Direction stored by ContextWithDirection.
func DirectionFromContext(ctx context.Context) (dtokit.Direction, bool) {
	d, ok := ctx.Value(ctxKeyDirection{}).(dtokit.Direction)
	return d, ok
}

// Handler is an http handler that reports failure by returning an error.
type Handler func(http.ResponseWriter, *http.Request) error

type options struct {
	logger *zap.Logger
}

// Option configures ErrorHandler.
type Option func(*options)

// WithLogger sets the logger used for failed requests. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ErrorHandler runs h and turns a returned error or a panic into a translated
// JSON response. Headers of a declared *exception.HTTPError are copied onto
// the response. When h already started its response the error is only
// logged.
func ErrorHandler(h Handler, opts ...Option) http.Handler {
	o := options{logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}
		var err error
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					if e, ok := rec.(error); ok {
						err = e
					} else {
						pe := exception.NewPlain(fmt.Sprint(rec))
						pe.Kind = "panic"
						err = pe
					}
				}
			}()
			err = h(rw, r)
		}()
		if err == nil {
			return
		}
		if rw.started {
			o.logger.Error("error after response started",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			return
		}
		WriteError(w, r, err, o.logger)
	})
}

// responseWriter records whether the handler wrote a status or body.
type responseWriter struct {
	http.ResponseWriter
	started bool
}

func (w *responseWriter) WriteHeader(code int) {
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// WriteError translates err and writes it as the response.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tr := exception.Translate(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", tr.StatusCode),
		zap.Error(err),
	}
	if tr.StatusCode >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Debug("request rejected", fields...)
	}
	if he, ok := asHTTPError(err); ok {
		for k, vs := range he.Headers {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
	}
	if werr := tr.Write(w); werr != nil {
		logger.Warn("write error response", zap.Error(werr))
	}
}

// WriteRecord writes fields as an ordered JSON object.
func WriteRecord(w http.ResponseWriter, status int, fields dtokit.Fields) error {
	body, err := fields.MarshalJSON()
	if err != nil {
		return exception.InternalServer("encode response", exception.WithCause(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func asHTTPError(err error) (*exception.HTTPError, bool) {
	var he *exception.HTTPError
	if errors.As(err, &he) && he != nil {
		return he, true
	}
	return nil, false
}

// DecodeBody reads a JSON object from the request body and applies profile p
// in the Write direction. Malformed bodies become a Validation error whose
// extra payload lists the issues.
func DecodeBody(r *http.Request, p *config.Profile) (dtokit.Fields, error) {
	in, err := dtokit.FromJSONReader(r.Body)
	if err != nil {
		if iss, ok := dtokit.AsIssues(err); ok {
			return nil, exception.Validation("invalid request body", exception.WithExtra(issuePayload(iss)), exception.WithCause(err))
		}
		return nil, exception.Validation("invalid request body", exception.WithCause(err))
	}
	return p.Apply(in, dtokit.Write), nil
}

// Respond applies profile p in the Read direction and writes the result.
func Respond(w http.ResponseWriter, status int, p *config.Profile, r dtokit.Record) error {
	return WriteRecord(w, status, p.Apply(r, dtokit.Read))
}

type issueView struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func issuePayload(iss dtokit.Issues) []issueView {
	out := make([]issueView, len(iss))
	for i, it := range iss {
		out[i] = issueView{Path: it.Path, Code: it.Code, Message: it.Message}
	}
	return out
}

// WithDirection stores d in each request context before calling next.
func WithDirection(d dtokit.Direction, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ContextWithDirection(r.Context(), d)))
	})
}
