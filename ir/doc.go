// Package ir provides the untyped document tree that schema documents are
// decoded into before references and inheritance are resolved.
//
// # Node Structure
//
// A Node represents a single value in a document. The IR works as a
// recursive tagged union, where values are placed in fields depending on
// the node type:
//
//   - NullType: null value
//   - BoolType: boolean, in Bool
//   - NumberType: numeric value, in Int64, Float64 or as text in Number
//   - StringType: string value, in String
//   - ArrayType: ordered list of nodes, in Values
//   - ObjectType: key-value pairs, in Fields and Values
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the string key for the value at
// Values[i]. Keys keep the order in which they were declared in the source
// document, and each key occurs once.
//
// # Navigating Nodes
//
// Nodes maintain parent-child relationships through Parent, ParentIndex
// and ParentField. Path returns a JSONPath-style location for messages,
// and Lookup walks a JSON pointer:
//
//	p, _ := ir.ParsePointer("/definitions/id")
//	def := doc.Lookup(p)
//
// # Thread Safety
//
// Node structures are not thread-safe. Clone nodes before handing them to
// other goroutines.
package ir
