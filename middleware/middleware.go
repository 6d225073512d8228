// Package middleware binds HTTP request bodies to tracked models. The
// framework adapters (middleware/gin, middleware/echo) build on it.
package middleware

import (
	"context"
	"errors"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/partial"
	"github.com/reoring/partial/codec/jsoncodec"
)

// MaxBodyBytes caps request bodies read by Bind.
const MaxBodyBytes = 1 << 20

// ctxKeyModel is a typed context key for storing *T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyModel[T any] struct{}

// ContextWithModel attaches a decoded model to the context.
func ContextWithModel[T any](ctx context.Context, m *T) context.Context {
	return context.WithValue(ctx, ctxKeyModel[T]{}, m)
}

// ModelFromContext retrieves the model stored by ContextWithModel.
func ModelFromContext[T any](ctx context.Context) (*T, bool) {
	m, ok := ctx.Value(ctxKeyModel[T]{}).(*T)
	return m, ok
}

// DefaultOptions returns the options used at HTTP JSON boundaries when the
// caller passes none: case-sensitive names, duplicate keys rejected.
func DefaultOptions() jsoncodec.Options {
	return jsoncodec.Options{Options: partial.Options{OnDuplicate: partial.DuplicateError}}
}

func pick(opts []jsoncodec.Options) jsoncodec.Options {
	if len(opts) == 0 {
		return DefaultOptions()
	}
	return opts[len(opts)-1]
}

// Bind decodes the JSON body of r into a fresh T. Bodies larger than
// MaxBodyBytes fail.
func Bind[T any](w http.ResponseWriter, r *http.Request, s *partial.Schema[T], opts ...jsoncodec.Options) (*T, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()
	return jsoncodec.Decode(s, body, pick(opts))
}

// Handler decodes each request body into T, stores it in the request
// context and calls next. Decode failures answer 400 (413 when the body is
// too large) with ErrorPayload.
func Handler[T any](s *partial.Schema[T], next http.Handler, opts ...jsoncodec.Options) http.Handler {
	opt := pick(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, err := Bind(w, r, s, opt)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithModel(r.Context(), m)))
	})
}

// IssueView is the wire shape of one issue in an error response.
type IssueView struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ErrorPayload shapes err for JSON responses: {"issues": [...]} for Issues,
// {"error": "..."} otherwise.
func ErrorPayload(err error) map[string]any {
	iss, ok := partial.AsIssues(err)
	if !ok {
		return map[string]any{"error": err.Error()}
	}
	views := make([]IssueView, len(iss))
	for i, it := range iss {
		views[i] = IssueView{Path: it.Path, Code: it.Code, Message: it.Message, Line: it.Line, Column: it.Column}
	}
	return map[string]any{"issues": views}
}

// StatusFor maps a Bind error to an HTTP status code.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// WriteError writes ErrorPayload(err) with StatusFor(err).
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(err))
	_ = gojson.NewEncoder(w).Encode(ErrorPayload(err))
}
