package parser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidYamlFormat = errors.New("invalid yaml format")
	ErrEmptySource       = errors.New("empty simpledata source")

	ErrUnknownField  = errors.New("unknown field")
	ErrRequiredField = errors.New("required field")
	ErrInvalidType   = errors.New("invalid type")
	ErrOutOfRange    = errors.New("value out of range")
	ErrDuplicateKey  = errors.New("duplicate key")
)

type requiredFieldError struct {
	parentKey string
	field     string
	line      int
}

func (e *requiredFieldError) Error() string {
	return fmt.Sprintf("missing required %s field %q (line %d)", e.parentKey, e.field, e.line)
}

func (e *requiredFieldError) Unwrap() error {
	return ErrRequiredField
}

type invalidFieldError struct {
	reason    error
	parentKey string
	field     string
	line      int
}

func (e *invalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s field %q (line %d): %s", e.parentKey, e.field, e.line, e.reason)
}

func (e *invalidFieldError) Unwrap() error {
	return e.reason
}

// Line returns the 1-based source line the error refers to, or 0.
func Line(err error) int {
	var req *requiredFieldError
	if errors.As(err, &req) {
		return req.line
	}
	var inv *invalidFieldError
	if errors.As(err, &inv) {
		return inv.line
	}
	return 0
}
