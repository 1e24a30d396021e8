package schema

import (
	"bytes"
	"iter"
	"unique"

	"github.com/g2crowd/json-schema-tools/encode"
	"github.com/g2crowd/json-schema-tools/ir"
)

// Schema is a resolved schema document. It is never modified once built,
// accessors hand out copies.
type Schema struct {
	name  string
	doc   *ir.Node
	props *Properties
}

func newSchema(name string, doc *ir.Node) *Schema {
	if doc.Index("name") == -1 {
		kvs := make([]ir.KeyVal, 0, len(doc.Fields)+1)
		kvs = append(kvs, ir.KeyVal{Key: "name", Val: ir.FromString(name)})
		for i, f := range doc.Fields {
			kvs = append(kvs, ir.KeyVal{Key: f.String, Val: doc.Values[i]})
		}
		doc = ir.FromKeyVals(kvs)
	}
	props := ir.Get(doc, "properties")
	if props == nil || props.Type != ir.ObjectType {
		props = ir.FromKeyVals(nil)
	}
	return &Schema{name: name, doc: doc, props: &Properties{node: props}}
}

// Name returns the name the schema is registered under.
func (s *Schema) Name() string { return s.name }

func (s *Schema) Properties() *Properties { return s.props }

// Field returns a copy of the top level field key, or nil.
func (s *Schema) Field(key string) *ir.Node {
	v := ir.Get(s.doc, key)
	if v == nil {
		return nil
	}
	return v.Clone()
}

// Document returns a copy of the resolved document.
func (s *Schema) Document() *ir.Node {
	return s.doc.Clone()
}

// ToMap projects the resolved document onto plain Go values.
func (s *Schema) ToMap() map[string]any {
	return ir.ToAny(s.doc).(map[string]any)
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(s.doc, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Properties is the ordered property set of a Schema.
type Properties struct {
	node *ir.Node
}

func (p *Properties) Len() int { return len(p.node.Fields) }

// Keys returns the property keys in order.
func (p *Properties) Keys() []string { return p.node.Keys() }

func (p *Properties) Has(key string) bool { return p.node.Index(key) != -1 }

// Get returns a copy of the definition of property key, or nil.
func (p *Properties) Get(key string) *ir.Node {
	v := ir.Get(p.node, key)
	if v == nil {
		return nil
	}
	return v.Clone()
}

// All iterates over copies of the property definitions in order.
func (p *Properties) All() iter.Seq2[string, *ir.Node] {
	return func(yield func(string, *ir.Node) bool) {
		for i, f := range p.node.Fields {
			if !yield(f.String, p.node.Values[i].Clone()) {
				return
			}
		}
	}
}

// Symbol is an interned key. Accessors taking a Key accept a Symbol
// and a plain string alike.
type Symbol = unique.Handle[string]

func Sym(s string) Symbol { return unique.Make(s) }

type Key interface {
	string | Symbol
}

func keyString[K Key](k K) string {
	switch x := any(k).(type) {
	case Symbol:
		return x.Value()
	case string:
		return x
	}
	panic("unreachable")
}

// Prop returns a copy of the definition of property k of s, or nil.
func Prop[K Key](s *Schema, k K) *ir.Node {
	return s.props.Get(keyString(k))
}

// Lookup returns the schema registered under k in r.
func Lookup[K Key](r *Registry, k K) (*Schema, bool) {
	return r.Get(keyString(k))
}
