package partial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/partial/i18n"
)

// Issue codes.
const (
	CodeInvalidSelector = "invalid_selector"
	CodeUnexpectedShape = "unexpected_shape"
	CodeInvalidType     = "invalid_type"
	CodeParseError      = "parse_error"
	CodeDuplicateKey    = "duplicate_key"
	CodeConstruction    = "construction"
)

var (
	// ErrInvalidSelector is reported when a selector does not address exactly
	// one top-level field of the model.
	ErrInvalidSelector = errors.New("partial: invalid selector")
	// ErrUnexpectedShape is reported when a decoded document is not an object.
	ErrUnexpectedShape = errors.New("partial: unexpected shape")
	// ErrDuplicateKey is reported when two members normalize to the same
	// lookup key and OnDuplicate is DuplicateError.
	ErrDuplicateKey = errors.New("partial: duplicate key")
	// ErrNotTracked is reported when a schema is requested for a type that
	// does not embed Partial of itself.
	ErrNotTracked = errors.New("partial: type does not embed Partial[Self]")
	// ErrWireNameConflict is reported when two fields of a schema resolve to
	// the same wire name, at construction or under the options of a call.
	ErrWireNameConflict = errors.New("partial: wire name conflict")
)

// Position locates a token in the source document. Zero Line/Column means
// unknown; Offset is -1 when unknown.
type Position struct {
	Offset int64
	Line   int
	Column int
}

// NoPosition is the Position used when the source location is unknown.
var NoPosition = Position{Offset: -1}

// Issue represents a single decode or encode failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /address/zip).
	Code    string
	Message string
	Cause   error // Optional: underlying error (driver error or sentinel).
	Offset  int64 // Byte offset in the input document (-1 when unknown).
	Line    int   // 1-based; 0 when unknown.
	Column  int   // 1-based; 0 when unknown.
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Line > 0 {
			fmt.Fprintf(b, " (line %d, column %d)", it.Line, it.Column)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes every issue cause so errors.Is and errors.As reach sentinels
// and driver errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, path string, cause error, data map[string]string) Issues {
	return Issues{{Path: path, Code: code, Message: i18n.T(code, data), Cause: cause, Offset: -1}}
}

// UnexpectedShape builds the issue reported when the root value is not an
// object. got names the actual kind ("array", "string", "number", ...).
func UnexpectedShape(got string, pos Position) error {
	iss := singleIssue(CodeUnexpectedShape, "/", ErrUnexpectedShape, map[string]string{"got": got})
	iss[0].Offset, iss[0].Line, iss[0].Column = pos.Offset, pos.Line, pos.Column
	return iss
}

// NestedFailure converts a value-level failure reported by a format adapter
// into Issues. inner is the path below the member (JSON Pointer, possibly
// empty) and pos the absolute location of the failure when known.
func NestedFailure(code, inner string, pos Position, cause error) Issues {
	return Issues{{
		Path:    inner,
		Code:    code,
		Message: i18n.T(code, nil),
		Cause:   cause,
		Offset:  pos.Offset,
		Line:    pos.Line,
		Column:  pos.Column,
	}}
}

// prefixPath returns err with "/"+wire prepended to every issue path. Errors
// that are not Issues are wrapped as a parse_error at the member path.
func prefixPath(err error, wire string, pos Position) error {
	base := "/" + escapePointerToken(wire)
	iss, ok := AsIssues(err)
	if !ok {
		out := NestedFailure(CodeParseError, base, pos, err)
		out[0].Message = err.Error()
		return out
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" || it.Path == "/" {
			it.Path = base
		} else {
			it.Path = base + it.Path
		}
		if it.Offset < 0 && it.Line == 0 {
			it.Offset, it.Line, it.Column = pos.Offset, pos.Line, pos.Column
		}
		out[i] = it
	}
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointerToken(s string) string { return pointerEscaper.Replace(s) }
