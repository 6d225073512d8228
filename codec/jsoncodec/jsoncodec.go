// Package jsoncodec is the JSON front end of the partial adapter: it reads
// the root object of a document into members, lets the partial core match
// them against a Schema, and writes only defined fields back out.
//
// A model can join encoding/json (or goccy/go-json) type dispatch by
// delegating its Marshaler/Unmarshaler methods here:
//
//	func (u *User) UnmarshalJSON(b []byte) error {
//		return jsoncodec.UnmarshalInto(userSchema, u, b, jsonOpts)
//	}
//
//	func (u *User) MarshalJSON() ([]byte, error) {
//		return jsoncodec.Marshal(userSchema, u, jsonOpts)
//	}
package jsoncodec

import (
	"bytes"
	"io"
	"reflect"

	"github.com/reoring/partial"
)

// Options are the document-wide options for one call.
type Options struct {
	partial.Options
	// Driver decodes and encodes field values. nil selects GoJSON.
	Driver Driver
}

func pick(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Driver == nil {
		opt.Driver = GoJSON()
	}
	return opt
}

// Applies reports whether values of type t are handled by this adapter,
// i.e. t (or *t) directly embeds partial.Partial of itself.
func Applies(t reflect.Type) bool { return partial.Applies(t) }

// Unmarshal decodes a JSON document whose root is an object into a fresh T.
// The last Options value wins.
func Unmarshal[T any](s *partial.Schema[T], data []byte, opts ...Options) (*T, error) {
	opt := pick(opts)
	members, err := readObject(data, opt.Driver)
	if err != nil {
		return nil, err
	}
	return partial.DecodeObject(s, members, opt.Options)
}

// UnmarshalInto resets dst and decodes data into it. It is the building
// block for UnmarshalJSON methods.
func UnmarshalInto[T any](s *partial.Schema[T], dst *T, data []byte, opts ...Options) error {
	opt := pick(opts)
	members, err := readObject(data, opt.Driver)
	if err != nil {
		return err
	}
	return partial.DecodeObjectInto(s, dst, members, opt.Options)
}

// Decode reads the whole of r and decodes it like Unmarshal.
func Decode[T any](s *partial.Schema[T], r io.Reader, opts ...Options) (*T, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(s, data, opts...)
}

// Marshal encodes the defined fields of m as a JSON object, in declared
// field order. Undefined fields are omitted whatever their value.
func Marshal[T any](s *partial.Schema[T], m *T, opts ...Options) ([]byte, error) {
	opt := pick(opts)
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	err := partial.EncodeObject(s, m, opt.Options, func(name string, value any) error {
		key, err := opt.Driver.Marshal(name)
		if err != nil {
			return err
		}
		val, err := opt.Driver.Marshal(value)
		if err != nil {
			return partial.NestedFailure(partial.CodeInvalidType, "", partial.NoPosition, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode writes Marshal's output to w.
func Encode[T any](s *partial.Schema[T], w io.Writer, m *T, opts ...Options) error {
	data, err := Marshal(s, m, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
