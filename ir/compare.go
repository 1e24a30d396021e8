package ir

import (
	"math"
	"math/big"
)

// Equal reports whether a and b are structurally identical. Objects must
// hold the same fields in the same order. Numbers are equal when they
// denote the same value, whichever representation holds it.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return numberEqual(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].String != b.Fields[i].String {
				return false
			}
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b *Node) bool {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return *a.Int64 == *b.Int64
	case a.Float64 != nil && b.Float64 != nil:
		return *a.Float64 == *b.Float64
	}
	x, okA := bigFloat(a)
	y, okB := bigFloat(b)
	if !okA || !okB {
		return a.Number != "" && a.Number == b.Number
	}
	return x.Cmp(y) == 0
}

func bigFloat(n *Node) (*big.Float, bool) {
	switch {
	case n.Int64 != nil:
		return new(big.Float).SetInt64(*n.Int64), true
	case n.Float64 != nil:
		if math.IsNaN(*n.Float64) {
			return nil, false
		}
		return big.NewFloat(*n.Float64), true
	}
	f, ok := new(big.Float).SetString(n.Number)
	return f, ok
}
