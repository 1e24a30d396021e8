package libdiff

import (
	"github.com/g2crowd/json-schema-tools/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the structural difference between from and to, or nil if
// they are equal.
func Diff(from, to *ir.Node) *ir.Node {
	if from.Type == ir.ObjectType && to.Type == ir.ObjectType {
		return DiffObject(from, to)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return MakeDiff(from, to)
}

// DiffObject diffs the field names of from and to as sequences, so that
// moved fields show up as a deletion and an insertion. Fields present on
// both sides recurse.
func DiffObject(from, to *ir.Node) *ir.Node {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []ir.KeyVal
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				res = append(res, ir.KeyVal{Key: runeMap[r], Val: MakeDiff(from.Values[fi], nil)})
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				if d := Diff(from.Values[fi], to.Values[ti]); d != nil {
					res = append(res, ir.KeyVal{Key: runeMap[r], Val: d})
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				res = append(res, ir.KeyVal{Key: runeMap[r], Val: MakeDiff(nil, to.Values[ti])})
				ti++
			}
		}
	}
	if len(res) == 0 {
		return nil
	}
	return ir.FromKeyVals(res)
}

func mapFieldsTo(m map[string]rune, im map[rune]string, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i := range node.Fields {
		f := node.Fields[i].String
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
			im[r] = f
		}
		rs[i] = r
	}
	return rs
}
