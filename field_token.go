package partial

import (
	"fmt"
	"reflect"
)

// Select resolves sel to the field of s it addresses. The selector must
// return the address of a top-level field of T, e.g.:
//
//	partial.Select(userSchema, func(u *User) *string { return &u.Name })
//
// Resolution is by address and type: literals, computed values returned by
// method calls, nested field chains, the embedded tracker and fields absent
// from the schema fail with ErrInvalidSelector. A method that only returns
// the address of a top-level field resolves to that field. Adjacent fields of
// the same zero-size type cannot be told apart by address and also fail;
// use Schema.Field for them.
func Select[T any, F any](s *Schema[T], sel func(*T) *F) (*Field[T], error) {
	if sel == nil {
		return nil, invalidSelector(s.typeName, "selector must not be nil")
	}
	probe := new(T)
	got := sel(probe)
	if got == nil {
		return nil, invalidSelector(s.typeName, "selector returned nil")
	}
	target := reflect.ValueOf(got)
	var match *Field[T]
	for _, f := range s.fields {
		fp := reflect.ValueOf(f.ptr(probe))
		if fp.Pointer() != target.Pointer() || fp.Type() != target.Type() {
			continue
		}
		// Adjacent zero-size fields of one type share an address.
		if match != nil {
			return nil, invalidSelector(s.typeName, fmt.Sprintf("selector is ambiguous between %q and %q", match.name, f.name))
		}
		match = f
	}
	if match == nil {
		return nil, invalidSelector(s.typeName, "selector must return the address of a top-level field")
	}
	return match, nil
}

// MustSelect is like Select but panics on error. Intended for package-level
// field handles.
func MustSelect[T any, F any](s *Schema[T], sel func(*T) *F) *Field[T] {
	f, err := Select(s, sel)
	if err != nil {
		panic(err)
	}
	return f
}

// IsDefined reports whether the field addressed by sel is defined on m.
func IsDefined[T any, F any](s *Schema[T], m *T, sel func(*T) *F) (bool, error) {
	f, err := Select(s, sel)
	if err != nil {
		return false, err
	}
	return s.track(m).IsDefined(f), nil
}

// IsUndefined is the negation of IsDefined. Invalid selectors still fail.
func IsUndefined[T any, F any](s *Schema[T], m *T, sel func(*T) *F) (bool, error) {
	ok, err := IsDefined(s, m, sel)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func invalidSelector(typeName, detail string) error {
	iss := singleIssue(CodeInvalidSelector, "/", ErrInvalidSelector, nil)
	iss[0].Message = typeName + ": " + detail
	return iss
}
