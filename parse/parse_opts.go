package parse

import "github.com/g2crowd/json-schema-tools/format"

type parseOpts struct {
	format   format.Format
	filename string
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// WithFilename names the document in error messages.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}
