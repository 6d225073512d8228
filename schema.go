package partial

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/reoring/partial/internal/engine"
)

// Field describes one declared field of T: its declared name, optional wire
// name override and typed accessors. A *Field[T] is also the handle passed to
// Partial.IsDefined, so it can only be obtained from a Schema.
type Field[T any] struct {
	name     string
	wire     string
	index    int
	typ      reflect.Type
	ptr      func(*T) any
	newValue func() any
	assign   func(*T, any)
}

// Name returns the declared (Go) field name.
func (f *Field[T]) Name() string { return f.name }

// Index returns the position of the field in declared order.
func (f *Field[T]) Index() int { return f.index }

// Type returns the declared field type.
func (f *Field[T]) Type() reflect.Type { return f.typ }

// WireOverride returns the custom wire name when one is attached.
func (f *Field[T]) WireOverride() (string, bool) { return f.wire, f.wire != "" }

// WireName resolves the external name: override, else policy(name), else name.
func (f *Field[T]) WireName(policy NamingPolicy) string {
	if f.wire != "" {
		return f.wire
	}
	if policy != nil {
		return policy(f.name)
	}
	return f.name
}

// Pointer returns a pointer to the field inside m (as *F in an any).
func (f *Field[T]) Pointer(m *T) any { return f.ptr(m) }

// FieldOption customizes a field described with Describe.
type FieldOption func(*fieldConfig)

type fieldConfig struct{ wire string }

// WireName attaches a custom wire name to a described field.
func WireName(name string) FieldOption { return func(c *fieldConfig) { c.wire = name } }

// Describe declares a field of T for NewSchema. sel must return the address
// of the field; the resulting accessors are typed closures, so decoding and
// encoding through an explicit schema never walks reflect metadata.
//
//	partial.Describe("Name", func(u *User) *string { return &u.Name }, partial.WireName("name"))
func Describe[T any, F any](name string, sel func(*T) *F, opts ...FieldOption) *Field[T] {
	var cfg fieldConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Field[T]{
		name:     name,
		wire:     cfg.wire,
		typ:      reflect.TypeFor[F](),
		ptr:      func(m *T) any { return sel(m) },
		newValue: func() any { return new(F) },
		assign:   func(m *T, v any) { *sel(m) = *v.(*F) },
	}
}

// Schema is the immutable, ordered field descriptor table of a tracked model
// type T. It is safe for concurrent use.
type Schema[T any] struct {
	typeName string
	fields   []*Field[T]
	byName   map[string]*Field[T]
	track    func(*T) *Partial[T]
}

// NewSchema builds a Schema from explicitly described fields, kept in the
// given order. Field names must be unique and non-empty, every selector
// must be non-nil and no two fields may share a wire name.
func NewSchema[T any, PT trackedPtr[T]](fields ...*Field[T]) (*Schema[T], error) {
	s := newSchema[T, PT]()
	for _, f := range fields {
		if f == nil || f.name == "" || f.ptr == nil {
			return nil, constructionIssue(s.typeName, "field descriptor without name or selector", nil)
		}
		if _, dup := s.byName[f.name]; dup {
			return nil, constructionIssue(s.typeName, fmt.Sprintf("field %q described twice", f.name), nil)
		}
		c := *f
		c.index = len(s.fields)
		s.fields = append(s.fields, &c)
		s.byName[c.name] = &c
	}
	if _, err := s.wireKeys(nil, engine.Verbatim); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema[T any, PT trackedPtr[T]](fields ...*Field[T]) *Schema[T] {
	s, err := NewSchema[T, PT](fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaOf derives a Schema from the exported fields of struct T, in
// declaration order, resolving wire overrides from struct tags (see
// ResolveStructKey). It fails with ErrNotTracked unless T directly embeds
// Partial[T], and with ErrWireNameConflict when two fields resolve to the
// same wire name. The struct is inspected once; the result should be kept in a
// package-level variable.
func SchemaOf[T any, PT trackedPtr[T]]() (*Schema[T], error) {
	s := newSchema[T, PT]()
	rt := reflect.TypeFor[T]()
	if !Applies(rt) {
		return nil, constructionIssue(s.typeName, "type must directly embed partial.Partial of itself", ErrNotTracked)
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || isTrackerField(sf) {
			continue
		}
		wire, skip := ResolveStructKey(sf)
		if skip {
			continue
		}
		f := reflectField[T](sf)
		f.wire = wire
		f.index = len(s.fields)
		s.fields = append(s.fields, f)
		s.byName[f.name] = f
	}
	if _, err := s.wireKeys(nil, engine.Verbatim); err != nil {
		return nil, err
	}
	return s, nil
}

// wireKeys returns the lookup key of every field, in declared order, under
// policy and fold. Two fields with one key fail with ErrWireNameConflict.
func (s *Schema[T]) wireKeys(policy NamingPolicy, fold engine.Folder) ([]string, error) {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = fold(f.WireName(policy))
	}
	if _, dup := engine.BuildLookup(keys, engine.Verbatim, engine.DupError); dup != nil {
		first, second := s.fields[dup.First], s.fields[dup.Second]
		msg := fmt.Sprintf("fields %q and %q share wire name %q", first.name, second.name, second.WireName(policy))
		return nil, constructionIssue(s.typeName, msg, ErrWireNameConflict)
	}
	return keys, nil
}

// MustSchemaOf is like SchemaOf but panics on error.
func MustSchemaOf[T any, PT trackedPtr[T]]() *Schema[T] {
	s, err := SchemaOf[T, PT]()
	if err != nil {
		panic(err)
	}
	return s
}

func newSchema[T any, PT trackedPtr[T]]() *Schema[T] {
	return &Schema[T]{
		typeName: reflect.TypeFor[T]().String(),
		byName:   make(map[string]*Field[T]),
		track:    func(m *T) *Partial[T] { return PT(m).tracker() },
	}
}

func reflectField[T any](sf reflect.StructField) *Field[T] {
	idx := sf.Index
	typ := sf.Type
	field := func(m *T) reflect.Value { return reflect.ValueOf(m).Elem().FieldByIndex(idx) }
	return &Field[T]{
		name:     sf.Name,
		typ:      typ,
		ptr:      func(m *T) any { return field(m).Addr().Interface() },
		newValue: func() any { return reflect.New(typ).Interface() },
		assign:   func(m *T, v any) { field(m).Set(reflect.ValueOf(v).Elem()) },
	}
}

func constructionIssue(typeName, msg string, cause error) error {
	iss := singleIssue(CodeConstruction, "/", cause, nil)
	iss[0].Message = typeName + ": " + msg
	return iss
}

// TypeName returns the Go type name of T.
func (s *Schema[T]) TypeName() string { return s.typeName }

// Len returns the number of fields.
func (s *Schema[T]) Len() int { return len(s.fields) }

// Fields returns the field descriptors in declared order.
func (s *Schema[T]) Fields() []*Field[T] { return append([]*Field[T](nil), s.fields...) }

// Field looks up a field by its declared name.
func (s *Schema[T]) Field(name string) (*Field[T], error) {
	if f, ok := s.byName[name]; ok {
		return f, nil
	}
	return nil, invalidSelector(s.typeName, "no field named "+name)
}

// MustField is like Field but panics when the name is unknown.
func (s *Schema[T]) MustField(name string) *Field[T] {
	f, err := s.Field(name)
	if err != nil {
		panic(err)
	}
	return f
}

// New returns a fresh model instance with every field at its zero value and
// nothing defined.
func (s *Schema[T]) New() *T { return new(T) }

// Tracker returns the tracker embedded in m.
func (s *Schema[T]) Tracker(m *T) *Partial[T] { return s.track(m) }

// DefinedFields yields the defined fields of m in declared order. The
// sequence is lazy and may be ranged over repeatedly; it reflects the
// definitions present at iteration time.
func (s *Schema[T]) DefinedFields(m *T) iter.Seq[*Field[T]] {
	return func(yield func(*Field[T]) bool) {
		tr := s.track(m)
		for _, f := range s.fields {
			if !tr.has(f.name) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// DefinedNames returns the declared names of the defined fields of m in
// declared order.
func (s *Schema[T]) DefinedNames(m *T) []string {
	var out []string
	for f := range s.DefinedFields(m) {
		out = append(out, f.name)
	}
	return out
}
