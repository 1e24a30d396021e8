// Package libdiff compares schema documents.
//
// # Usage
//
//	// structural diff, nil when equal
//	d := libdiff.Diff(raw, resolved)
//
//	// line diff of two texts
//	for _, l := range libdiff.Lines(a, b) { ... }
//
// A structural diff is itself a node. Unchanged fields are omitted.
// A changed value is an object holding one of the keys "insert",
// "delete" or "replace" ({"from": ..., "to": ...}). Objects whose
// fields differ recurse.
package libdiff
