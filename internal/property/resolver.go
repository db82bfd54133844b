package property

import (
	"simpledata/internal/loader/schema"
	"simpledata/internal/logger"
)

// Options qualify a property query. Index is 0-based; converting from a
// 1-based scripting convention is the caller's job.
type Options struct {
	Index  int
	Key    ID
	HasKey bool
}

// At builds Options for indexed access.
func At(index int) Options {
	return Options{Index: index}
}

// WithKey builds Options for keyed access.
func WithKey(key ID) Options {
	return Options{Key: key, HasKey: true}
}

// Resolver reads properties out of a description. It keeps no state
// besides the logger and never mutates desc.
type Resolver struct {
	log logger.Logger
}

func NewResolver(log logger.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve returns the value of property id in desc.
func (r *Resolver) Resolve(desc *schema.Desc, id ID, opts Options) (Var, error) {
	switch Lookup(id) {
	case Name:
		return TextVar(desc.Name), nil
	case F32:
		return FloatVar(desc.F32), nil
	case U32:
		return FloatVar(float32(desc.U32)), nil
	case I32:
		return FloatVar(float32(desc.I32)), nil
	case U64:
		return DoubleVar(float64(desc.U64)), nil
	case I64:
		return DoubleVar(float64(desc.I64)), nil
	case V3:
		return Vector3Var(desc.V3), nil
	case ArrayF32:
		return r.arrayElement(ArrayF32, desc.ArrayF32, opts)
	default:
		return Var{}, &Error{Property: ReverseHash(id), Err: ErrPropertyNotFound}
	}
}

func (r *Resolver) arrayElement(p Property, values []float32, opts Options) (Var, error) {
	if opts.HasKey {
		return Var{}, &Error{Property: p.String(), Err: ErrMissingKey}
	}
	if opts.Index < 0 || opts.Index >= len(values) {
		r.log.Error("index out of bounds",
			logger.F("property", p.String()),
			logger.F("index", opts.Index),
			logger.F("length", len(values)),
		)
		return Var{}, &Error{Property: p.String(), Index: opts.Index, Length: len(values), Err: ErrIndexOutOfRange}
	}
	return FloatVar(values[opts.Index]), nil
}
