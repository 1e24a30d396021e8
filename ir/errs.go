package ir

import "errors"

var (
	ErrNotObject   = errors.New("not an object")
	ErrUnsupported = errors.New("unsupported value")
	ErrPointer     = errors.New("bad pointer")
)
