package partial

import (
	"github.com/reoring/partial/internal/engine"
	"github.com/reoring/partial/i18n"
)

// Member is one top-level member of an inbound object, as materialized by a
// format adapter (see codec/jsoncodec and codec/yamlcodec).
type Member struct {
	// Name is the member name exactly as it appears in the document.
	Name string
	// Pos locates the member value in the document.
	Pos Position
	// Null reports an explicit null value.
	Null bool
	// Decode deserializes the member value into dst, a pointer to the
	// field's declared type. Failures should be Issues whose paths are
	// relative to the member; other errors are reported as parse_error at
	// the member path.
	Decode func(dst any) error
}

// EmitFunc writes one name/value pair of an encoded object. value is a
// pointer to the field value.
type EmitFunc func(name string, value any) error

// DecodeObject builds a fresh T from the members of an inbound object.
// Fields are visited in declared order; a field whose wire name matches a
// member is decoded and marked defined, every other field keeps its zero value
// and stays undefined. Lookup costs O(members + fields).
func DecodeObject[T any](s *Schema[T], members []Member, opts Options) (*T, error) {
	m := s.New()
	if err := decodeMembers(s, m, members, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeObjectInto resets dst to its zero value (forgetting earlier
// definitions) and decodes members into it, so that decoding into an
// existing variable behaves like decoding into a fresh instance. On error dst
// holds the fields decoded before the failure.
func DecodeObjectInto[T any](s *Schema[T], dst *T, members []Member, opts Options) error {
	var zero T
	*dst = zero
	return decodeMembers(s, dst, members, opts)
}

func decodeMembers[T any](s *Schema[T], m *T, members []Member, opts Options) error {
	fold := engine.Folder(engine.Verbatim)
	if opts.CaseInsensitive {
		fold = engine.Upper
	}
	keys, err := s.wireKeys(opts.NamingPolicy, fold)
	if err != nil {
		return err
	}
	names := make([]string, len(members))
	for i, mem := range members {
		names[i] = mem.Name
	}
	lookup, dup := engine.BuildLookup(names, fold, toEngineDup(opts.OnDuplicate))
	if dup != nil {
		mem := members[dup.Second]
		return Issues{{
			Path:    "/" + escapePointerToken(mem.Name),
			Code:    CodeDuplicateKey,
			Message: i18n.T(CodeDuplicateKey, map[string]string{"key": mem.Name}),
			Cause:   ErrDuplicateKey,
			Offset:  mem.Pos.Offset,
			Line:    mem.Pos.Line,
			Column:  mem.Pos.Column,
		}}
	}

	tr := s.track(m)
	for j, f := range s.fields {
		i, ok := lookup[keys[j]]
		if !ok {
			continue
		}
		mem := members[i]
		v := f.newValue()
		if mem.Decode != nil {
			if err := mem.Decode(v); err != nil {
				return prefixPath(err, mem.Name, mem.Pos)
			}
		}
		tr.defineField(m, f, v, mem.Null)
	}
	return nil
}

// EncodeObject calls emit for every defined field of m, in declared order,
// under its resolved wire name. Undefined fields are never emitted, whatever
// their current value.
func EncodeObject[T any](s *Schema[T], m *T, opts Options, emit EmitFunc) error {
	wires, err := s.wireKeys(opts.NamingPolicy, engine.Verbatim)
	if err != nil {
		return err
	}
	for f := range s.DefinedFields(m) {
		wire := wires[f.index]
		if err := emit(wire, f.ptr(m)); err != nil {
			return prefixPath(err, wire, NoPosition)
		}
	}
	return nil
}

func toEngineDup(p DuplicatePolicy) engine.DuplicateMode {
	switch p {
	case DuplicateFirstWins:
		return engine.DupFirstWins
	case DuplicateLastWins:
		return engine.DupLastWins
	default:
		return engine.DupError
	}
}
