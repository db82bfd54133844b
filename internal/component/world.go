package component

import (
	"fmt"

	"github.com/google/uuid"

	"simpledata/internal/config"
	"simpledata/internal/logger"
	"simpledata/internal/pool"
	"simpledata/internal/property"
	"simpledata/internal/resource"
)

// ErrPoolExhausted is returned by Create when the world is at capacity.
var ErrPoolExhausted = pool.ErrPoolExhausted

// Handle identifies an instance inside its World. It is the pool index.
type Handle uint32

// Component is one instance. It owns nothing; Resource points at the
// shared holder.
type Component struct {
	Resource *resource.Holder
}

// World holds every instance of the component type for one game world.
type World struct {
	id       uuid.UUID
	ctx      *Context
	log      logger.Logger
	pool     *pool.ObjectPool[Component]
	resolver *property.Resolver
}

func newWorld(ctx *Context, capacity uint32) *World {
	id := uuid.New()
	log := ctx.log.With(logger.F("world", id.String()))
	return &World{
		id:       id,
		ctx:      ctx,
		log:      log,
		pool:     pool.New[Component](capacity),
		resolver: property.NewResolver(log),
	}
}

func (w *World) ID() uuid.UUID    { return w.id }
func (w *World) Capacity() uint32 { return w.pool.Capacity() }
func (w *World) Len() uint32      { return w.pool.Size() }

// Create allocates an instance bound to holder.
func (w *World) Create(holder *resource.Holder) (Handle, error) {
	index, err := w.pool.Alloc()
	if err != nil {
		w.log.Error(fmt.Sprintf("simpledata could not be created since the buffer is full (%d), increase the '%s' value in the project settings",
			w.pool.Capacity(), config.MaxCountKey),
			logger.F("capacity", w.pool.Capacity()),
			logger.F("setting", config.MaxCountKey),
		)
		return 0, ErrPoolExhausted
	}
	w.pool.Get(index).Resource = holder
	return Handle(index), nil
}

// Destroy frees the instance. The handle must not be used afterwards; a
// handle that is not live is logged and ignored.
func (w *World) Destroy(h Handle) {
	if !w.Alive(h) {
		w.log.Warn("destroy of unallocated instance", logger.F("handle", uint32(h)))
		return
	}
	w.pool.Free(uint32(h))
}

// OnReload rebinds the instance to holder after its resource was reloaded.
// The instance keeps its handle.
func (w *World) OnReload(h Handle, holder *resource.Holder) {
	w.pool.Get(uint32(h)).Resource = holder
}

// Component returns the instance for h.
func (w *World) Component(h Handle) *Component {
	return w.pool.Get(uint32(h))
}

// Alive reports whether h refers to an allocated instance.
func (w *World) Alive(h Handle) bool {
	return w.pool.Allocated(uint32(h))
}

// GetProperty resolves id against the instance's current description.
func (w *World) GetProperty(h Handle, id property.ID, opts property.Options) (property.Var, error) {
	c := w.pool.Get(uint32(h))
	return w.resolver.Resolve(c.Resource.Desc(), id, opts)
}

// Range calls fn for every live instance until fn returns false.
func (w *World) Range(fn func(h Handle, c *Component) bool) {
	w.pool.Range(func(index uint32, c *Component) bool {
		return fn(Handle(index), c)
	})
}

// GetArrayData returns the raw float array of c. The slice aliases the
// holder's description and is replaced, not modified, by a reload.
func GetArrayData(c *Component) []float32 {
	return c.Resource.Desc().ArrayF32
}
