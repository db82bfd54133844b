package parser

import (
	"io"

	"simpledata/internal/loader/schema"
)

// Parser turns a human-written .simpledata source into a Desc.
type Parser interface {
	Parse(r io.Reader) (*schema.Desc, error)
}

func NewParser() Parser {
	return NewYamlParser()
}
