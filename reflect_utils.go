package partial

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to find a struct field's
// wire name override.
// Priority: partial:"name=..." > json tag name > no override (""). A "-"
// json tag or partial:"-" reports skip=true.
func ResolveStructKey(sf reflect.StructField) (wire string, skip bool) {
	if pt := sf.Tag.Get("partial"); pt != "" {
		if pt == "-" {
			return "", true
		}
		for _, p := range strings.Split(pt, ",") {
			p = strings.TrimSpace(p)
			if name, ok := strings.CutPrefix(p, "name="); ok {
				return name, false
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "", true
		}
		name, _, _ := strings.Cut(jt, ",")
		return name, false
	}
	return "", false
}
