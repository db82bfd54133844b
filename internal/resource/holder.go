// Package resource owns parsed simpledata descriptions and shares them
// between component instances.
package resource

import (
	"simpledata/internal/loader/codec"
	"simpledata/internal/loader/schema"
)

// ErrFormat is returned when bytes do not decode as a description.
var ErrFormat = codec.ErrFormat

// Holder is the sole owner of one parsed description. Component instances
// keep a *Holder and read through Desc, so an in-place Reload is visible
// to all of them on their next read.
type Holder struct {
	desc *schema.Desc
}

// Load decodes a compiled description into a new Holder.
func Load(data []byte) (*Holder, error) {
	desc, err := codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &Holder{desc: desc}, nil
}

// NewHolder wraps an already parsed description.
func NewHolder(desc *schema.Desc) *Holder {
	return &Holder{desc: desc}
}

// Reload replaces the description. On a format error the previous
// description stays bound.
func (h *Holder) Reload(data []byte) error {
	desc, err := codec.Unmarshal(data)
	if err != nil {
		return err
	}
	h.desc = desc
	return nil
}

// Release drops the description. Every instance referencing h must be
// destroyed or rebound first.
func (h *Holder) Release() {
	h.desc = nil
}

// Desc returns the bound description, nil after Release.
func (h *Holder) Desc() *schema.Desc {
	return h.desc
}
