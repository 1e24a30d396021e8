package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yml":  YAMLFormat,
		"yaml": YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffixes returns the file extensions for this format (including the dot).
// The first one is the preferred suffix.
func (f Format) Suffixes() []string {
	switch f {
	case JSONFormat:
		return []string{".json"}
	case YAMLFormat:
		return []string{".yaml", ".yml"}
	default:
		return nil
	}
}

// Suffix returns the preferred file extension for this format.
func (f Format) Suffix() string {
	s := f.Suffixes()
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// FromPath returns the format indicated by the extension of path.
func FromPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range []Format{JSONFormat, YAMLFormat} {
		for _, s := range f.Suffixes() {
			if s == ext {
				return f, true
			}
		}
	}
	return 0, false
}

// TrimSuffix removes a known document suffix from the base name of path.
func TrimSuffix(path string) string {
	base := filepath.Base(path)
	if _, ok := FromPath(base); ok {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}
