// Package property resolves hashed property identifiers against a
// simpledata description.
package property

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ID is the 64-bit hash of a property name.
type ID uint64

// Hash returns the identifier for a property name.
func Hash(name string) ID {
	return ID(xxhash.Sum64String(name))
}

// Property enumerates the readable fields of a simpledata component.
type Property uint8

const (
	Unknown Property = iota
	Name
	F32
	U32
	I32
	U64
	I64
	V3
	ArrayF32
)

var propertyNames = [...]string{
	Unknown:  "",
	Name:     "name",
	F32:      "f32",
	U32:      "u32",
	I32:      "i32",
	U64:      "u64",
	I64:      "i64",
	V3:       "v3",
	ArrayF32: "array_f32",
}

var byID = func() map[ID]Property {
	m := make(map[ID]Property, len(propertyNames)-1)
	for p := Name; p <= ArrayF32; p++ {
		m[Hash(propertyNames[p])] = p
	}
	return m
}()

func (p Property) String() string {
	if int(p) < len(propertyNames) && p != Unknown {
		return propertyNames[p]
	}
	return "unknown"
}

// ID returns the hashed identifier of p.
func (p Property) ID() ID {
	return Hash(propertyNames[p])
}

// Lookup maps an identifier to its property, or Unknown.
func Lookup(id ID) Property {
	return byID[id]
}

// Names lists every readable property name.
func Names() []string {
	out := make([]string, 0, len(propertyNames)-1)
	for p := Name; p <= ArrayF32; p++ {
		out = append(out, propertyNames[p])
	}
	return out
}

// ReverseHash returns the property name for id when known, otherwise the
// hash in hex. Used for diagnostics only.
func ReverseHash(id ID) string {
	if p := Lookup(id); p != Unknown {
		return p.String()
	}
	return fmt.Sprintf("%#016x", uint64(id))
}
