// Package format names the encodings schema documents are stored in and
// maps file suffixes to them. A document's schema name is its base file
// name without the suffix, see TrimSuffix.
package format
