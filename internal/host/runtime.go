// Package host drives simpledata components the way the engine does: game
// objects live in an ark world, each bound to an instance of the component
// type, with resources shared through a factory.
package host

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mlange-42/ark-tools/app"
	"github.com/mlange-42/ark/ecs"

	"simpledata/internal/component"
	"simpledata/internal/config"
	"simpledata/internal/logger"
	"simpledata/internal/resource"
)

const (
	// DefaultMaxInstances is the collection instance limit handed to the
	// component type when a world is created.
	DefaultMaxInstances = 1024

	componentFragment = "simpledata"
)

var (
	ErrObjectNotFound  = errors.New("game object not found")
	ErrDuplicateObject = errors.New("game object already exists")
)

// System is a step of the app loop.
type System interface {
	Initialize(w *ecs.World)
	Update(w *ecs.World)
	Finalize(w *ecs.World)
}

// Runtime owns one game world.
type Runtime struct {
	app      *app.App
	log      logger.Logger
	typ      *component.Type
	world    *component.World
	factory  *resource.Factory
	objects  *ecs.Map2[GameObject, SimpleData]
	filter   *ecs.Filter2[GameObject, SimpleData]
	entities map[string]ecs.Entity
}

// NewRuntime creates a runtime loading compiled resources from fsys.
func NewRuntime(cfg config.Config, fsys fs.FS, log logger.Logger) *Runtime {
	tool := app.New(1024)
	tool.TPS = 60

	typ := component.NewType(component.NewContext(cfg, log))
	return &Runtime{
		app:      tool,
		log:      log.With(logger.F("subsystem", "host")),
		typ:      typ,
		world:    typ.NewWorld(DefaultMaxInstances),
		factory:  resource.NewFactory(fsys, log),
		objects:  ecs.NewMap2[GameObject, SimpleData](&tool.World),
		filter:   ecs.NewFilter2[GameObject, SimpleData](&tool.World),
		entities: make(map[string]ecs.Entity),
	}
}

func (r *Runtime) World() *component.World    { return r.world }
func (r *Runtime) Factory() *resource.Factory { return r.factory }
func (r *Runtime) ECS() *ecs.World            { return &r.app.World }

// Spawn creates every object of c. Objects that fail are logged and
// skipped; the returned error joins their failures.
func (r *Runtime) Spawn(c *Collection) (int, error) {
	var errs []error
	spawned := 0
	for _, o := range c.Objects {
		if err := r.spawn(o); err != nil {
			r.log.Error("failed to spawn game object",
				logger.F("collection", c.Name),
				logger.F("object", o.ID),
				logger.F("error", err),
			)
			errs = append(errs, fmt.Errorf("object %s: %w", o.ID, err))
			continue
		}
		spawned++
	}
	r.log.Info("collection spawned",
		logger.F("collection", c.Name),
		logger.F("spawned", spawned),
		logger.F("failed", len(errs)),
	)
	return spawned, errors.Join(errs...)
}

func (r *Runtime) spawn(o Object) error {
	if _, ok := r.entities[o.ID]; ok {
		return ErrDuplicateObject
	}
	holder, err := r.factory.Get(o.SimpleData)
	if err != nil {
		return err
	}
	h, err := r.world.Create(holder)
	if err != nil {
		r.factory.Release(holder)
		return err
	}
	p, _ := r.factory.PathOf(holder)
	e := r.objects.NewEntity(&GameObject{ID: o.ID}, &SimpleData{Handle: h, Path: p})
	r.entities[o.ID] = e
	return nil
}

// Despawn destroys the object's instance, then drops its resource reference.
func (r *Runtime) Despawn(id string) error {
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	_, sd := r.objects.Get(e)
	holder := r.world.Component(sd.Handle).Resource
	r.world.Destroy(sd.Handle)
	r.factory.Release(holder)

	r.app.World.RemoveEntity(e)
	delete(r.entities, id)
	return nil
}

// Close tears the world down. Every instance is destroyed before any
// resource is released.
func (r *Runtime) Close() {
	holders := make([]*resource.Holder, 0, len(r.entities))
	for _, e := range r.entities {
		_, sd := r.objects.Get(e)
		holders = append(holders, r.world.Component(sd.Handle).Resource)
		r.world.Destroy(sd.Handle)
	}
	for _, h := range holders {
		r.factory.Release(h)
	}
	for id, e := range r.entities {
		r.app.World.RemoveEntity(e)
		delete(r.entities, id)
	}
	r.typ.DeleteWorld(r.world)
}

// Reload re-reads the resource at path and rebinds every instance built
// from it. A rejected reload leaves all instances on the previous content.
func (r *Runtime) Reload(path string) (int, error) {
	holder, err := r.factory.Reload(path)
	if err != nil {
		return 0, err
	}
	p, _ := r.factory.PathOf(holder)

	rebound := 0
	query := r.filter.Query()
	for query.Next() {
		_, sd := query.Get()
		if sd.Path != p {
			continue
		}
		r.world.OnReload(sd.Handle, holder)
		rebound++
	}
	r.log.Debug("instances rebound", logger.F("path", p), logger.F("instances", rebound))
	return rebound, nil
}

// ResolveComponent implements luabind.Resolver for urls of the form
// "<object-id>#simpledata" or "<object-id>".
func (r *Runtime) ResolveComponent(url string) (*component.World, component.Handle, error) {
	id, fragment, _ := strings.Cut(url, "#")
	if fragment != "" && fragment != componentFragment {
		return nil, 0, fmt.Errorf("%w: %s has no component %q", ErrObjectNotFound, id, fragment)
	}
	e, ok := r.entities[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	_, sd := r.objects.Get(e)
	return r.world, sd.Handle, nil
}

// Run adds systems to the app loop and steps it ticks times.
func (r *Runtime) Run(ticks int, systems ...System) {
	for _, s := range systems {
		r.app.AddSystem(s)
	}
	r.app.Initialize()
	for i := 0; i < ticks; i++ {
		r.app.Update()
	}
	r.app.Finalize()
}
