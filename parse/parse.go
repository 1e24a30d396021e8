package parse

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/g2crowd/json-schema-tools/format"
	"github.com/g2crowd/json-schema-tools/ir"

	"github.com/goccy/go-yaml"
)

// Parse decodes d into an IR node. YAML is the default format; since JSON
// is a subset of YAML both decode through the same path, ParseJSON only
// adds a strict syntax check.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.format.IsJSON() && !json.Valid(d) {
		return nil, pOpts.wrap(fmt.Errorf("invalid JSON"))
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, pOpts.wrap(err)
	}
	res, err := fromYAML(v)
	if err != nil {
		return nil, pOpts.wrap(err)
	}
	return res, nil
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func (o *parseOpts) wrap(err error) error {
	if o.filename == "" {
		return fmt.Errorf("%w: %s: %w", ErrParse, o.format, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrParse, o.filename, err)
}

func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			key, err := keyString(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := fromYAML(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case uint64:
		if x > 1<<63-1 {
			return ir.FromNumber(strconv.FormatUint(x, 10)), nil
		}
		return ir.FromInt(int64(x)), nil
	}
	return ir.FromAny(v)
}

func keyString(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("%w: %T", ErrKeyType, k)
}
