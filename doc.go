// Package partial lets a model tell "field was present in the inbound
// document" apart from "field kept its zero value", which PATCH-style APIs
// need so that omitted fields never overwrite stored state.
//
// It provides:
//
//   - Partial[T], embedded in a model struct, recording which fields were
//     defined by decoding (IsDefined / IsUndefined / WasNull)
//   - Schema[T], the immutable field descriptor table used by codecs, built
//     from struct tags (SchemaOf) or from typed selectors (NewSchema/Describe,
//     also produced by cmd/partialgen)
//   - DecodeObject / EncodeObject, the format-agnostic adapter core; JSON and
//     YAML front ends live under codec/
//   - Apply, which merges the defined fields of a patch onto a stored value
//
// Design policy:
//   - Options are passed explicitly to every decode/encode call; nothing is
//     registered globally.
//   - Errors are Issues (JSON Pointer path, code, position); the library never
//     logs.
//   - Only decoding and Apply mark fields defined. Assigning a field directly
//     leaves its definedness unchanged.
//
// Typical usage:
//
//	type User struct {
//		partial.Partial[User]
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//
//	var userSchema = partial.MustSchemaOf[User]()
//	var userAge = userSchema.MustField("Age")
//
//	u, err := jsoncodec.Unmarshal(userSchema, body, jsoncodec.Options{})
//	if u.IsDefined(userAge) { ... }
package partial
