// Package parse decodes JSON and YAML schema documents into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse(data, parse.ParseJSON(), parse.WithFilename("contact.json"))
//	if err != nil {
//	    return err
//	}
//
// Object keys keep their declaration order, which the schema resolver
// relies on for deterministic property order. JSON input is checked for
// strict JSON syntax before decoding.
package parse
