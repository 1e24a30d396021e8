package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path returns a JSONPath-style description of the position of y in its
// tree, used in error messages.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"

	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Pointer is a parsed JSON pointer (RFC 6901): the list of unescaped
// reference tokens.
type Pointer []string

// ParsePointer parses p as a JSON pointer. The leading '/' is optional,
// so "definitions/id" and "/definitions/id" address the same node. The
// empty string addresses the whole document.
func ParsePointer(p string) (Pointer, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil, nil
	}
	segs := strings.Split(p, "/")
	res := make(Pointer, len(segs))
	for i, seg := range segs {
		u, err := unescapeToken(seg)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrPointer, p, err)
		}
		res[i] = u
	}
	return res, nil
}

func unescapeToken(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(tok) {
			return "", fmt.Errorf("dangling '~'")
		}
		switch tok[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape '~%c'", tok[i+1])
		}
		i++
	}
	return b.String(), nil
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		seg = strings.ReplaceAll(seg, "~", "~0")
		b.WriteString(strings.ReplaceAll(seg, "/", "~1"))
	}
	return b.String()
}

// Lookup walks p from y, following object fields by name and array
// elements by index. It returns nil if any step does not exist.
func (y *Node) Lookup(p Pointer) *Node {
	res := y
	for _, seg := range p {
		switch res.Type {
		case ObjectType:
			res = Get(res, seg)
		case ArrayType:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(res.Values) {
				return nil
			}
			res = res.Values[i]
		default:
			return nil
		}
		if res == nil {
			return nil
		}
	}
	return res
}
