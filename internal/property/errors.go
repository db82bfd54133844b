package property

import (
	"errors"
	"fmt"
)

// Resolution failures. Each is wrapped in an *Error carrying the context.
var (
	ErrPropertyNotFound = errors.New("property not found")
	// ErrMissingKey is returned when a sub-key is supplied to a property
	// that only supports indexed access.
	ErrMissingKey      = errors.New("property does not support keyed access")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Error carries the context of a failed resolution.
type Error struct {
	Property string
	Index    int
	Length   int
	Err      error
}

func (e *Error) Error() string {
	switch e.Err {
	case ErrIndexOutOfRange:
		return fmt.Sprintf("%s: index %d is out of bounds, array %s only has %d elements", e.Err, e.Index, e.Property, e.Length)
	default:
		return fmt.Sprintf("%s: %s", e.Err, e.Property)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
