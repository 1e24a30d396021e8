package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// ToAny projects y onto plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil. Object key order is lost.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case StringType:
		return y.String
	case BoolType:
		return y.Bool
	case NumberType:
		switch {
		case y.Int64 != nil:
			return *y.Int64
		case y.Float64 != nil:
			return *y.Float64
		}
		return json.Number(y.Number)
	default:
		return nil
	}
}

// FromAny converts a plain Go value into a node tree. Maps must have
// string keys; their entries are placed in sorted key order. A *Node is
// copied.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x.Clone(), nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(string(x)), nil
	case map[string]any:
		kvs := make([]KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			kvs = append(kvs, KeyVal{Key: k, Val: n})
		}
		return FromKeyVals(kvs), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return FromFloat(float64(u)), nil
		}
		return FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		vals := make([]*Node, rv.Len())
		for i := range rv.Len() {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupported, rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromAny(m)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, rv.Interface())
}
