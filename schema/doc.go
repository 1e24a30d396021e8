// Package schema reads named schema documents from a source.Source and
// resolves them into read-only Schema values.
//
// # Documents
//
// A schema document is an object. Its "properties" field maps property
// keys to property definitions, each an arbitrary object such as
//
//	{
//	  "name": "contact",
//	  "properties": {
//	    "first_name": {"type": "string"},
//	    "id": {"$ref": "basic_definitions#/definitions/id", "description": "contact id"}
//	  }
//	}
//
// Two keys are directives when their value is a string:
//   - "$ref": the object is replaced by the referenced fragment, with its
//     own sibling fields laid over the result.
//   - "extends": the object inherits the properties of the named parent
//     schema.
//
// Either key holding an object is kept as an ordinary field. Any other
// value is rejected. In particular a sequence under "extends" fails, there
// is at most one parent.
//
// # References
//
// A reference has the form
//
//	[target]["#"["/"]pointer]
//
// target names another schema document. It may be written as a relative
// path ("./sub/contact.json"), which is reduced to the base name without
// its document suffix. An empty target is the document holding the
// reference. pointer is a JSON pointer (RFC 6901) into the target
// document, the leading "/" is optional and an empty pointer addresses the
// whole document. Referenced fragments are resolved in the context of
// their own document before substitution, so chains of references
// collapse completely.
//
// # Inheritance
//
// The parent of an "extends" is read through the same Reader, so it is
// resolved at most once and cached in the same Registry. The parent's
// properties come first in parent order. A child property with the same
// key replaces the parent's entry in place, others are appended in child
// order. Property definitions are never merged deeply.
//
// # Registries
//
// Every Reader resolves through one Registry. By default this is the
// process wide registry returned by Shared. WithScope(ScopePrivate) gives
// a Reader its own registry, invisible to other readers.
package schema
