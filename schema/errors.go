package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/g2crowd/json-schema-tools/source"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrSchemaNotFound      = source.ErrNotFound
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrCyclicReference     = errors.New("cyclic reference")
	ErrUnresolvedParent    = errors.New("unresolved parent")
)

// RefError reports a $ref in schema Schema which could not be resolved.
type RefError struct {
	Schema string
	Ref    string
	Err    error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("schema %q: $ref %q: %v", e.Schema, e.Ref, e.Err)
}

func (e *RefError) Unwrap() error { return e.Err }

// CycleError is returned when a reference or an extends chain comes back
// to a target that is still being resolved. Chain lists the targets as
// name#pointer keys, ending with the one revisited.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicReference, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicReference
}
