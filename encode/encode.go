package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/g2crowd/json-schema-tools/format"
	"github.com/g2crowd/json-schema-tools/ir"

	"github.com/goccy/go-yaml"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w in the selected format, followed by a newline.
// Object fields are written in declaration order. Colors only apply to
// JSON output.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		return encodeYAML(node, w, es)
	}
	if err := encodeJSON(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// MustString encodes node and panics on failure; for debugging output.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(es.indent))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func toYAML(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toYAML(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	default:
		return ir.ToAny(node)
	}
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			return writeColored(w, es, ir.ObjectType, SepColor, "{}")
		}
		if err := writeColored(w, es, ir.ObjectType, SepColor, "{"); err != nil {
			return err
		}
		es.depth++
		for i, f := range node.Fields {
			if i > 0 {
				if err := writeColored(w, es, ir.ObjectType, SepColor, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			key, err := quote(f.String)
			if err != nil {
				return err
			}
			if err := writeColored(w, es, ir.ObjectType, FieldColor, key); err != nil {
				return err
			}
			sep := ": "
			if es.wire {
				sep = ":"
			}
			if err := writeColored(w, es, ir.ObjectType, SepColor, sep); err != nil {
				return err
			}
			if err := encodeJSON(node.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeColored(w, es, ir.ObjectType, SepColor, "}")
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeColored(w, es, ir.ArrayType, SepColor, "[]")
		}
		if err := writeColored(w, es, ir.ArrayType, SepColor, "["); err != nil {
			return err
		}
		es.depth++
		for i, v := range node.Values {
			if i > 0 {
				if err := writeColored(w, es, ir.ArrayType, SepColor, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeColored(w, es, ir.ArrayType, SepColor, "]")
	case ir.StringType:
		s, err := quote(node.String)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.StringType, ValueColor, s)
	case ir.NumberType:
		s, err := number(node)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.NumberType, ValueColor, s)
	case ir.BoolType:
		return writeColored(w, es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NullType:
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	}
	return fmt.Errorf("%w: unknown node type %s at %s", ErrEncoding, node.Type, node.Path())
}

func number(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v at %s", ErrEncoding, f, node.Path())
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return node.Number, nil
}

func quote(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeColored(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
