// Package yamlcodec is the YAML front end of the partial adapter, built on
// gopkg.in/yaml.v3 nodes. Member positions come straight from the node tree,
// so issues carry exact line and column numbers.
//
// Models join yaml.v3 type dispatch by delegating:
//
//	func (u *User) UnmarshalYAML(n *yaml.Node) error {
//		return yamlcodec.DecodeNodeInto(userSchema, u, n)
//	}
//
//	func (u *User) MarshalYAML() (any, error) {
//		return yamlcodec.EncodeNode(userSchema, u)
//	}
package yamlcodec

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/partial"
)

func pick(opts []partial.Options) partial.Options {
	if len(opts) == 0 {
		return partial.Options{}
	}
	return opts[len(opts)-1]
}

// Unmarshal decodes a YAML document whose root is a mapping into a fresh T.
func Unmarshal[T any](s *partial.Schema[T], data []byte, opts ...partial.Options) (*T, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, parseIssue(err)
	}
	return DecodeNode(s, &root, opts...)
}

// UnmarshalInto resets dst and decodes data into it.
func UnmarshalInto[T any](s *partial.Schema[T], dst *T, data []byte, opts ...partial.Options) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return parseIssue(err)
	}
	return DecodeNodeInto(s, dst, &root, opts...)
}

// DecodeNode decodes a mapping node (or a document node wrapping one).
func DecodeNode[T any](s *partial.Schema[T], n *yaml.Node, opts ...partial.Options) (*T, error) {
	members, err := readMapping(n)
	if err != nil {
		return nil, err
	}
	return partial.DecodeObject(s, members, pick(opts))
}

// DecodeNodeInto resets dst and decodes n into it; see partial.DecodeObjectInto.
func DecodeNodeInto[T any](s *partial.Schema[T], dst *T, n *yaml.Node, opts ...partial.Options) error {
	members, err := readMapping(n)
	if err != nil {
		return err
	}
	return partial.DecodeObjectInto(s, dst, members, pick(opts))
}

// Marshal encodes the defined fields of m as a YAML mapping in declared order.
func Marshal[T any](s *partial.Schema[T], m *T, opts ...partial.Options) ([]byte, error) {
	n, err := EncodeNode(s, m, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeNode builds the mapping node for the defined fields of m.
func EncodeNode[T any](s *partial.Schema[T], m *T, opts ...partial.Options) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	err := partial.EncodeObject(s, m, pick(opts), func(name string, value any) error {
		var vn yaml.Node
		if err := vn.Encode(value); err != nil {
			return partial.NestedFailure(partial.CodeInvalidType, "", partial.NoPosition, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		out.Content = append(out.Content, key, &vn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func readMapping(n *yaml.Node) ([]partial.Member, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, partial.UnexpectedShape("empty document", position(n))
		}
		n = n.Content[0]
	}
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, partial.UnexpectedShape(kindOf(n), position(n))
	}
	members := make([]partial.Member, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		members = append(members, partial.Member{
			Name:   k.Value,
			Pos:    position(v),
			Null:   v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null",
			Decode: memberDecoder(v),
		})
	}
	return members, nil
}

func memberDecoder(v *yaml.Node) func(any) error {
	return func(dst any) error {
		err := v.Decode(dst)
		if err == nil {
			return nil
		}
		if iss, ok := partial.AsIssues(err); ok {
			return iss
		}
		var te *yaml.TypeError
		if errors.As(err, &te) {
			iss := partial.NestedFailure(partial.CodeInvalidType, "", position(v), err)
			iss[0].Message = strings.Join(te.Errors, "; ")
			return iss
		}
		iss := partial.NestedFailure(partial.CodeParseError, "", position(v), err)
		iss[0].Message = err.Error()
		return iss
	}
}

func parseIssue(err error) error {
	iss := partial.NestedFailure(partial.CodeParseError, "/", partial.NoPosition, err)
	iss[0].Message = err.Error()
	return iss
}

func position(n *yaml.Node) partial.Position {
	return partial.Position{Offset: -1, Line: n.Line, Column: n.Column}
}

func kindOf(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case 0:
		return "empty document"
	}
	return "unknown"
}
