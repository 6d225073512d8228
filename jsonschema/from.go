package jsonschema

import (
	"encoding"
	"encoding/json"
	"reflect"
	"time"

	"github.com/reoring/partial"
)

// From projects the descriptor table s onto an object schema. Properties are
// keyed by wire name under policy. No property is required: any field may
// be left undefined by a document. Unknown members are accepted since
// decoding ignores them.
func From[T any](s *partial.Schema[T], policy partial.NamingPolicy) *Schema {
	out := &Schema{
		Schema:               Draft,
		Title:                s.TypeName(),
		Type:                 "object",
		Properties:           make(map[string]*Schema, s.Len()),
		AdditionalProperties: true,
	}
	seen := map[reflect.Type]bool{reflect.TypeFor[T](): true}
	for _, f := range s.Fields() {
		out.Properties[f.WireName(policy)] = typeSchema(f.Type(), policy, seen)
	}
	return out
}

// TypeOf returns the schema of an arbitrary Go type, following the same
// rules From applies to field types.
func TypeOf(t reflect.Type, policy partial.NamingPolicy) *Schema {
	return typeSchema(t, policy, map[reflect.Type]bool{})
}

var (
	timeType            = reflect.TypeFor[time.Time]()
	rawMessageType      = reflect.TypeFor[json.RawMessage]()
	numberType          = reflect.TypeFor[json.Number]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	customMarshalerType = reflect.TypeFor[json.Marshaler]()
)

func typeSchema(t reflect.Type, policy partial.NamingPolicy, seen map[reflect.Type]bool) *Schema {
	if t.Kind() == reflect.Pointer {
		inner := typeSchema(t.Elem(), policy, seen)
		if s, ok := inner.Type.(string); ok {
			inner.Type = []string{s, "null"}
		}
		return inner
	}
	switch t {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case numberType:
		return &Schema{Type: "number"}
	case rawMessageType:
		return &Schema{}
	}
	// Tracked models marshal themselves but keep a struct layout we can read.
	if !partial.Applies(t) {
		pt := reflect.PointerTo(t)
		if pt.Implements(customMarshalerType) || t.Implements(customMarshalerType) {
			return &Schema{}
		}
		if pt.Implements(textMarshalerType) || t.Implements(textMarshalerType) {
			return &Schema{Type: "string"}
		}
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}
		}
		return &Schema{Type: "array", Items: typeSchema(t.Elem(), policy, seen)}
	case reflect.Array:
		return &Schema{Type: "array", Items: typeSchema(t.Elem(), policy, seen)}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: typeSchema(t.Elem(), policy, seen)}
	case reflect.Struct:
		return structSchema(t, policy, seen)
	}
	return &Schema{}
}

// structSchema reads exported fields with the same wire-name rules as
// partial.SchemaOf. Nested tracked models get the naming policy too; plain
// structs keep declared names, as encoding/json would.
func structSchema(t reflect.Type, policy partial.NamingPolicy, seen map[reflect.Type]bool) *Schema {
	if seen[t] {
		return &Schema{Type: "object"}
	}
	seen[t] = true
	defer delete(seen, t)

	tracked := partial.Applies(t)
	out := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || (tracked && sf.Anonymous && isTracker(sf)) {
			continue
		}
		wire, skip := partial.ResolveStructKey(sf)
		if skip {
			continue
		}
		if wire == "" {
			wire = sf.Name
			if tracked && policy != nil {
				wire = policy(sf.Name)
			}
		}
		out.Properties[wire] = typeSchema(sf.Type, policy, seen)
	}
	if tracked {
		out.AdditionalProperties = true
	}
	return out
}

func isTracker(sf reflect.StructField) bool {
	return sf.Type.PkgPath() == reflect.TypeFor[partial.Options]().PkgPath()
}
