package ir

import (
	"maps"
	"slices"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

// Clone returns a deep copy of y detached from y's parent.
func (y *Node) Clone() *Node {
	res := y.CloneTo(&Node{})
	res.Parent = nil
	res.ParentIndex = 0
	res.ParentField = ""
	return res
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}

	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber keeps a number that fits neither int64 nor float64 in its
// textual form.
func FromNumber(v string) *Node {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: v}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap builds an object with keys in sorted order, Go maps carry no
// declaration order.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		val := kv.Val
		if val == nil {
			val = Null()
		}
		val.Parent = res
		val.ParentIndex = i
		val.ParentField = kv.Key
		res.Fields[i] = &Node{
			Type:        StringType,
			String:      kv.Key,
			Parent:      res,
			ParentIndex: i,
			ParentField: kv.Key,
		}
		res.Values[i] = val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Get returns the value of field in object y, or nil.
func Get(y *Node, field string) *Node {
	i := y.Index(field)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Index returns the position of field in object y, or -1.
func (y *Node) Index(field string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return i
		}
	}
	return -1
}

// Keys returns the object keys in declaration order.
func (y *Node) Keys() []string {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Set replaces the value of an existing field in place or appends a new
// field at the end.
func (y *Node) Set(field string, val *Node) {
	if i := y.Index(field); i != -1 {
		val.Parent = y
		val.ParentIndex = i
		val.ParentField = field
		y.Values[i] = val
		return
	}
	i := len(y.Fields)
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = field
	y.Fields = append(y.Fields, &Node{
		Type:        StringType,
		String:      field,
		Parent:      y,
		ParentIndex: i,
		ParentField: field,
	})
	y.Values = append(y.Values, val)
}

// Delete removes field from object y, reporting whether it was present.
func (y *Node) Delete(field string) bool {
	i := y.Index(field)
	if i == -1 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Values); j++ {
		y.Fields[j].ParentIndex = j
		y.Values[j].ParentIndex = j
	}
	return true
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
