package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/g2crowd/json-schema-tools/debug"
	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/source"
)

// session holds the state of one top level read: the raw documents
// fetched so far and the chain of targets being resolved.
type session struct {
	r      *Reader
	docs   map[string]*ir.Node
	active map[string]bool
	chain  []string

	// waiting names the resolution this session waits on, guarded by
	// the registry.
	waiting string
}

func newSession(r *Reader) *session {
	return &session{
		r:      r,
		docs:   map[string]*ir.Node{},
		active: map[string]bool{},
	}
}

func (s *session) push(key string) error {
	if s.active[key] {
		return &CycleError{Chain: append(slices.Clone(s.chain), key)}
	}
	s.active[key] = true
	s.chain = append(s.chain, key)
	return nil
}

func (s *session) pop() {
	key := s.chain[len(s.chain)-1]
	s.chain = s.chain[:len(s.chain)-1]
	delete(s.active, key)
}

// document returns the raw document name. Documents are fetched once per
// session. A name the source does not know may still name a schema
// already in the registry, registered from a raw document.
func (s *session) document(name string) (*ir.Node, error) {
	if doc, ok := s.docs[name]; ok {
		return doc, nil
	}
	doc, err := s.r.src.LoadRaw(name)
	if err != nil {
		if !errors.Is(err, source.ErrNotFound) {
			return nil, err
		}
		sc, ok := s.r.reg.Get(name)
		if !ok {
			return nil, err
		}
		doc = sc.Document()
	}
	if doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %q", source.ErrNotAMap, name)
	}
	s.docs[name] = doc
	return doc, nil
}

// build resolves the raw document raw into a Schema named name.
func (s *session) build(name string, raw *ir.Node) (*Schema, error) {
	s.docs[name] = raw
	if err := s.push(Ref{Target: name}.String()); err != nil {
		return nil, err
	}
	defer s.pop()
	doc, err := s.resolve(name, raw)
	if err != nil {
		return nil, err
	}
	return newSchema(name, doc), nil
}

// resolve returns a copy of n, a node of document doc, with every
// reference substituted and every inheritance merged.
func (s *session) resolve(doc string, n *ir.Node) (*ir.Node, error) {
	switch n.Type {
	case ir.ArrayType:
		vals := make([]*ir.Node, len(n.Values))
		for i, v := range n.Values {
			rv, err := s.resolve(doc, v)
			if err != nil {
				return nil, err
			}
			vals[i] = rv
		}
		return ir.FromSlice(vals), nil
	case ir.ObjectType:
		ref, ok, err := refOf(n)
		if err != nil {
			return nil, &RefError{Schema: doc, Ref: fmt.Sprint(ir.ToAny(ir.Get(n, RefKey))), Err: err}
		}
		if ok {
			return s.resolveRef(doc, ref, n)
		}
		kvs := make([]ir.KeyVal, len(n.Fields))
		for i, f := range n.Fields {
			rv, err := s.resolve(doc, n.Values[i])
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: f.String, Val: rv}
		}
		return s.inherit(doc, ir.FromKeyVals(kvs))
	default:
		return n.Clone(), nil
	}
}

// resolveRef substitutes the reference ref held by n. The target is
// resolved within its own document, then the siblings of ref in n are
// laid over it.
func (s *session) resolveRef(doc, ref string, n *ir.Node) (*ir.Node, error) {
	refErr := func(err error) error {
		return &RefError{Schema: doc, Ref: ref, Err: err}
	}
	r, err := ParseRef(ref)
	if err != nil {
		return nil, refErr(err)
	}
	r = r.In(doc)
	if err := s.push(r.String()); err != nil {
		return nil, err
	}
	target, err := s.document(r.Target)
	if err != nil {
		s.pop()
		if errors.Is(err, source.ErrNotFound) {
			return nil, refErr(fmt.Errorf("%w: no schema %q", ErrUnresolvedReference, r.Target))
		}
		return nil, refErr(err)
	}
	frag := target.Lookup(r.Pointer)
	if frag == nil {
		s.pop()
		return nil, refErr(fmt.Errorf("%w: %q has no %q", ErrUnresolvedReference, r.Target, r.Pointer.String()))
	}
	res, err := s.resolve(r.Target, frag)
	s.pop()
	if err != nil {
		return nil, err
	}
	if debug.Refs() {
		debug.Logf("refs: %s in %q -> %v\n", ref, doc, res)
	}
	if len(n.Fields) == 1 {
		return res, nil
	}
	if res.Type != ir.ObjectType {
		return nil, refErr(fmt.Errorf("%w: %s target is %s, cannot add sibling fields", ErrUnresolvedReference, r, res.Type))
	}
	for i, f := range n.Fields {
		if f.String == RefKey {
			continue
		}
		rv, err := s.resolve(doc, n.Values[i])
		if err != nil {
			return nil, err
		}
		res.Set(f.String, rv)
	}
	return s.inherit(doc, res)
}
