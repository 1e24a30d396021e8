package schema

import (
	"errors"
	"fmt"

	"github.com/g2crowd/json-schema-tools/debug"
	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/source"
)

// inherit merges the properties of the parent named by the extends field
// of obj beneath obj's own, and removes extends. obj is modified in
// place and returned.
func (s *session) inherit(doc string, obj *ir.Node) (*ir.Node, error) {
	parentName, ok, err := extendsOf(obj)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", doc, err)
	}
	if !ok {
		return obj, nil
	}
	parent, err := s.parent(parentName)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) && !errors.Is(err, ErrUnresolvedParent) {
			return nil, fmt.Errorf("%w: %q extends %q: %w", ErrUnresolvedParent, doc, parentName, err)
		}
		return nil, err
	}
	props := parent.props.node.Clone()
	own := ir.Get(obj, "properties")
	switch {
	case own == nil:
		obj.Set("properties", props)
	case own.Type == ir.ObjectType:
		for i, f := range own.Fields {
			props.Set(f.String, own.Values[i])
		}
		obj.Set("properties", props)
	}
	obj.Delete(ExtendsKey)
	if debug.Inherit() {
		debug.Logf("inherit: %q extends %q, properties %v\n", doc, parentName, props)
	}
	return obj, nil
}

// parent returns the resolved schema name, from the registry or by
// resolving it within this session and storing it.
func (s *session) parent(name string) (*Schema, error) {
	if sc, ok := s.r.reg.Get(name); ok {
		s.r.metrics.read(true)
		return sc, nil
	}
	s.r.metrics.read(false)
	if err := s.push(Ref{Target: name}.String()); err != nil {
		return nil, err
	}
	s.pop()
	return s.r.reg.resolve(s, name, func() (*Schema, error) {
		raw, err := s.document(name)
		if err != nil {
			return nil, err
		}
		sc, err := s.build(name, raw)
		if err != nil {
			return nil, err
		}
		s.r.log.Debug("parent schema resolved", "name", name, "properties", sc.props.Len())
		return sc, nil
	})
}
