package libdiff

import "github.com/g2crowd/json-schema-tools/ir"

const (
	DeleteKey  = "delete"
	InsertKey  = "insert"
	ReplaceKey = "replace"
)

// MakeDiff records a change from from to to. A nil from is an insertion,
// a nil to a deletion.
func MakeDiff(from, to *ir.Node) *ir.Node {
	switch {
	case from == nil:
		return op(InsertKey, to.Clone())
	case to == nil:
		return op(DeleteKey, from.Clone())
	default:
		return op(ReplaceKey, ir.FromKeyVals([]ir.KeyVal{
			{Key: "from", Val: from.Clone()},
			{Key: "to", Val: to.Clone()},
		}))
	}
}

func op(key string, val *ir.Node) *ir.Node {
	val.Parent = nil
	return ir.FromKeyVals([]ir.KeyVal{{Key: key, Val: val}})
}
