// Package component implements the simpledata component type: per-world
// instance pools bound to shared resource holders.
package component

import (
	"simpledata/internal/config"
	"simpledata/internal/logger"
)

const (
	TypeName     = "simpledatac"
	TypePriority = 1050
)

// Context is created once per extension init and shared by every world of
// the component type.
type Context struct {
	MaxComponentsPerWorld uint32
	log                   logger.Logger
}

func NewContext(cfg config.Config, log logger.Logger) *Context {
	return &Context{
		MaxComponentsPerWorld: cfg.SimpleData.MaxCount,
		log:                   log.With(logger.F("subsystem", TypeName)),
	}
}

// Type is the registration record handed to the host.
type Type struct {
	Name     string
	Priority int
	ctx      *Context
}

func NewType(ctx *Context) *Type {
	return &Type{Name: TypeName, Priority: TypePriority, ctx: ctx}
}

func (t *Type) Context() *Context {
	return t.ctx
}

// NewWorld creates the per-world state. The pool holds the smaller of the
// configured limit and the host's maxInstances.
func (t *Type) NewWorld(maxInstances uint32) *World {
	capacity := min(t.ctx.MaxComponentsPerWorld, maxInstances)
	return newWorld(t.ctx, capacity)
}

// DeleteWorld drops a world. Live instances are discarded with it; their
// holders are owned by the resource factory and are not touched. Deleting
// an already deleted world is a no-op.
func (t *Type) DeleteWorld(w *World) {
	if w.pool == nil {
		return
	}
	w.ctx.log.Debug("deleting world",
		logger.F("world", w.id.String()),
		logger.F("instances", w.pool.Size()),
	)
	w.pool = nil
}
