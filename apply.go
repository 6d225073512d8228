package partial

// Apply copies every defined field of patch onto dst and marks it defined on
// dst, leaving the other fields of dst untouched. It returns the declared
// names of the applied fields in declared order. This is the PATCH merge:
// decode the request body into patch, load the stored value into dst, Apply.
func Apply[T any](s *Schema[T], dst, patch *T) []string {
	src := s.track(patch)
	tr := s.track(dst)
	var applied []string
	for f := range s.DefinedFields(patch) {
		tr.defineField(dst, f, f.ptr(patch), src.defined[f.name]&PresenceWasNull != 0)
		applied = append(applied, f.name)
	}
	return applied
}

// Clone returns a copy of m whose definitions are independent of m. A plain
// struct copy would share the defined set between both values.
func Clone[T any](s *Schema[T], m *T) *T {
	c := *m
	s.track(&c).defined = s.track(m).cloneState()
	return &c
}
