package partial

import (
	"maps"
	"reflect"
)

// Partial records which fields of the enclosing model were defined by an
// inbound document. Embed it by value, parameterized by the model itself:
//
//	type User struct {
//		partial.Partial[User]
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//
// Only the decode path (and Apply) marks fields defined. Assigning a field
// directly does not change its definedness.
type Partial[T any] struct {
	defined map[string]Presence
}

// Tracker is implemented by *T when T embeds Partial[T]. Embedding
// Partial[Other] does not satisfy Tracker[T], which keeps codecs from being
// applied to a model whose tracker belongs to another type.
type Tracker[T any] interface {
	tracker() *Partial[T]
}

// trackedPtr is the constraint used by schema constructors: PT is *T and
// carries the tracker of T.
type trackedPtr[T any] interface {
	*T
	Tracker[T]
}

func (p *Partial[T]) tracker() *Partial[T] { return p }

func (p *Partial[T]) selfType() reflect.Type { return reflect.TypeFor[T]() }

// IsDefined reports whether f was present in the decoded document.
func (p *Partial[T]) IsDefined(f *Field[T]) bool {
	if p == nil || f == nil {
		return false
	}
	return p.defined[f.name]&PresenceDefined != 0
}

// IsUndefined is the negation of IsDefined.
func (p *Partial[T]) IsUndefined(f *Field[T]) bool { return !p.IsDefined(f) }

// WasNull reports whether f was present with an explicit null.
func (p *Partial[T]) WasNull(f *Field[T]) bool {
	if p == nil || f == nil {
		return false
	}
	return p.defined[f.name]&PresenceWasNull != 0
}

// DefinedCount returns the number of defined fields.
func (p *Partial[T]) DefinedCount() int {
	if p == nil {
		return 0
	}
	return len(p.defined)
}

// Reset forgets every definition. Field values are left as they are.
func (p *Partial[T]) Reset() { p.defined = nil }

// defineField stores v (a pointer to the field's type) into m through the
// field's setter and marks the field defined. It reports whether this is the
// first definition of the field on this instance.
func (p *Partial[T]) defineField(m *T, f *Field[T], v any, null bool) bool {
	f.assign(m, v)
	if p.defined == nil {
		p.defined = make(map[string]Presence)
	}
	prev, seen := p.defined[f.name]
	next := prev&^PresenceWasNull | PresenceDefined
	if null {
		next |= PresenceWasNull
	}
	p.defined[f.name] = next
	return !seen
}

func (p *Partial[T]) has(name string) bool { return p.defined[name]&PresenceDefined != 0 }

func (p *Partial[T]) cloneState() map[string]Presence { return maps.Clone(p.defined) }

type selfTyped interface{ selfType() reflect.Type }

// Applies reports whether t (or the struct t points to) directly embeds
// Partial parameterized by itself. Embedding through an intermediate struct
// or embedding Partial of another type does not count.
func Applies(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
			continue
		}
		st, ok := reflect.New(sf.Type).Interface().(selfTyped)
		if ok && st.selfType() == t && isTrackerField(sf) {
			return true
		}
	}
	return false
}

// isTrackerField reports whether sf is an embedded Partial[X] for some X.
func isTrackerField(sf reflect.StructField) bool {
	if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
		return false
	}
	if sf.Type.PkgPath() != partialPkgPath {
		return false
	}
	_, ok := reflect.New(sf.Type).Interface().(selfTyped)
	return ok
}

var partialPkgPath = reflect.TypeFor[Partial[struct{}]]().PkgPath()
