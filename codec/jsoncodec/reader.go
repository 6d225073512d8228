package jsoncodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/partial"
	"github.com/reoring/partial/internal/engine"
)

// readObject splits doc into the members of its root object. Member
// boundaries and offsets come from encoding/json's Decoder, whose InputOffset
// is exact; member values are decoded later by the configured Driver.
func readObject(doc []byte, drv Driver) ([]partial.Member, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	start := engine.SkipSpace(doc, 0)
	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxIssue(doc, 0, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		line, col := engine.LineColumn(doc, start)
		return nil, partial.UnexpectedShape(kindOf(tok), partial.Position{Offset: start, Line: line, Column: col})
	}

	var members []partial.Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, syntaxIssue(doc, 0, err)
		}
		name, _ := keyTok.(string)
		off := engine.SkipSpace(doc, dec.InputOffset())
		if off < int64(len(doc)) && doc[off] == ':' {
			off = engine.SkipSpace(doc, off+1)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, syntaxIssue(doc, 0, err)
		}
		line, col := engine.LineColumn(doc, off)
		members = append(members, partial.Member{
			Name:   name,
			Pos:    partial.Position{Offset: off, Line: line, Column: col},
			Null:   bytes.Equal(raw, []byte("null")),
			Decode: memberDecoder(doc, raw, off, drv),
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, syntaxIssue(doc, 0, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, trailingIssue(doc, dec.InputOffset())
	}
	return members, nil
}

func memberDecoder(doc, raw []byte, base int64, drv Driver) func(any) error {
	return func(dst any) error {
		if err := drv.Unmarshal(raw, dst); err != nil {
			return convertError(doc, base, err)
		}
		return nil
	}
}

// convertError maps a driver error raised while decoding a member value that
// starts at base into Issues whose paths are relative to the member and whose
// positions are absolute in doc.
func convertError(doc []byte, base int64, err error) error {
	if iss, ok := partial.AsIssues(err); ok {
		out := make(partial.Issues, len(iss))
		for i, it := range iss {
			if it.Offset >= 0 {
				it.Offset += base
				it.Line, it.Column = engine.LineColumn(doc, it.Offset)
			}
			out[i] = it
		}
		return out
	}

	var (
		stdType *json.UnmarshalTypeError
		goType  *gojson.UnmarshalTypeError
		stdSyn  *json.SyntaxError
		goSyn   *gojson.SyntaxError
	)
	switch {
	case errors.As(err, &stdType):
		return nestedIssue(doc, partial.CodeInvalidType, dottedToPointer(stdType.Field), base, stdType.Offset, err)
	case errors.As(err, &goType):
		return nestedIssue(doc, partial.CodeInvalidType, dottedToPointer(goType.Field), base, goType.Offset, err)
	case errors.As(err, &stdSyn):
		return nestedIssue(doc, partial.CodeParseError, "", base, stdSyn.Offset, err)
	case errors.As(err, &goSyn):
		return nestedIssue(doc, partial.CodeParseError, "", base, goSyn.Offset, err)
	}
	return nestedIssue(doc, partial.CodeParseError, "", base, -1, err)
}

func nestedIssue(doc []byte, code, inner string, base, rel int64, cause error) partial.Issues {
	pos := partial.Position{Offset: base}
	if rel > 0 {
		pos.Offset = base + rel
	}
	pos.Line, pos.Column = engine.LineColumn(doc, pos.Offset)
	iss := partial.NestedFailure(code, inner, pos, cause)
	iss[0].Message = cause.Error()
	return iss
}

func syntaxIssue(doc []byte, base int64, err error) error {
	var off int64 = -1
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off = se.Offset
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		off = int64(len(doc))
	}
	return nestedIssue(doc, partial.CodeParseError, "/", base, off, err)
}

func trailingIssue(doc []byte, off int64) error {
	return nestedIssue(doc, partial.CodeParseError, "/", 0, off, errors.New("invalid character after top-level value"))
}

// dottedToPointer converts the dotted field path reported by encoding/json
// ("address.zip") into a JSON Pointer ("/address/zip").
func dottedToPointer(field string) string {
	if field == "" {
		return ""
	}
	var b bytes.Buffer
	for _, part := range bytes.Split([]byte(field), []byte{'.'}) {
		b.WriteByte('/')
		b.Write(bytes.ReplaceAll(bytes.ReplaceAll(part, []byte("~"), []byte("~0")), []byte("/"), []byte("~1")))
	}
	return b.String()
}

func kindOf(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return string(v)
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return "unknown"
}
