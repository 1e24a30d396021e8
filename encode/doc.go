// Package encode writes IR nodes as JSON or YAML, preserving the
// declaration order of object fields.
//
// # Usage
//
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// JSON output can be colored for terminals with EncodeColors(NewColors()).
package encode
