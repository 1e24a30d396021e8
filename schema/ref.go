package schema

import (
	"fmt"
	"strings"

	"github.com/g2crowd/json-schema-tools/format"
	"github.com/g2crowd/json-schema-tools/ir"
)

const (
	RefKey     = "$ref"
	ExtendsKey = "extends"
)

// Ref is a parsed $ref value.
type Ref struct {
	// Target is the referenced schema name, empty for the document holding
	// the reference.
	Target  string
	Pointer ir.Pointer
}

// ParseRef parses a $ref value, see the package documentation for the
// grammar.
func ParseRef(s string) (Ref, error) {
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrUnresolvedReference)
	}
	target, frag, _ := strings.Cut(s, "#")
	if target != "" {
		target = format.TrimSuffix(target)
		if target == "." || target == "/" {
			return Ref{}, fmt.Errorf("%w: no schema name in %q", ErrUnresolvedReference, s)
		}
	}
	p, err := ir.ParsePointer(frag)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %w", ErrUnresolvedReference, err)
	}
	return Ref{Target: target, Pointer: p}, nil
}

// In returns r with an empty Target replaced by doc.
func (r Ref) In(doc string) Ref {
	if r.Target == "" {
		r.Target = doc
	}
	return r
}

// String returns the canonical form target#/pointer.
func (r Ref) String() string {
	return r.Target + "#" + r.Pointer.String()
}

// refOf returns the string $ref of an object node. A mapping is an
// ordinary field and anything else is an error.
func refOf(n *ir.Node) (string, bool, error) {
	v := ir.Get(n, RefKey)
	if v == nil {
		return "", false, nil
	}
	switch v.Type {
	case ir.StringType:
		return v.String, true, nil
	case ir.ObjectType:
		return "", false, nil
	}
	return "", false, fmt.Errorf("%w: %s is %s, not a string", ErrUnresolvedReference, v.Path(), v.Type)
}

// extendsOf returns the parent named by an object node. Only a string
// names a parent; a mapping is an ordinary field and anything else is
// an error.
func extendsOf(n *ir.Node) (string, bool, error) {
	v := ir.Get(n, ExtendsKey)
	if v == nil {
		return "", false, nil
	}
	switch v.Type {
	case ir.StringType:
		return v.String, true, nil
	case ir.ObjectType:
		return "", false, nil
	case ir.ArrayType:
		return "", false, fmt.Errorf("%w: %s: only one parent schema may be extended", ErrInvalidArgument, v.Path())
	}
	return "", false, fmt.Errorf("%w: %s is %s, not a schema name", ErrInvalidArgument, v.Path(), v.Type)
}
