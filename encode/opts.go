package encode

import "github.com/g2crowd/json-schema-tools/format"

type EncodeOption func(*EncState)

// EncodeFormat selects JSON, the default, or YAML output.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// EncodeColors colors JSON output with c. YAML output is never colored.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire selects compact single line JSON output.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// Indent sets the number of spaces per nesting level, 2 by default.
func Indent(n int) EncodeOption {
	return func(es *EncState) {
		if n > 0 {
			es.indent = n
		}
	}
}
