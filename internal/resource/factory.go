package resource

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"simpledata/internal/interning"
	"simpledata/internal/logger"
)

type entry struct {
	holder *Holder
	refs   int
}

// Factory loads compiled descriptions from an fs.FS once per path and
// hands the same Holder to every caller until its last reference is
// released.
type Factory struct {
	fsys    fs.FS
	log     logger.Logger
	entries map[string]*entry
	paths   map[*Holder]string
}

func NewFactory(fsys fs.FS, log logger.Logger) *Factory {
	return &Factory{
		fsys:    fsys,
		log:     log.With(logger.F("subsystem", "resource")),
		entries: make(map[string]*entry),
		paths:   make(map[*Holder]string),
	}
}

func cleanPath(p string) string {
	return interning.Intern(strings.TrimPrefix(path.Clean(p), "/"))
}

// Get returns the holder for p, loading it on first use.
func (f *Factory) Get(p string) (*Holder, error) {
	p = cleanPath(p)
	if e, ok := f.entries[p]; ok {
		e.refs++
		return e.holder, nil
	}

	data, err := fs.ReadFile(f.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", p, err)
	}
	h, err := Load(data)
	if err != nil {
		f.log.Error("failed to load resource", logger.F("path", p), logger.F("error", err))
		return nil, fmt.Errorf("load resource %s: %w", p, err)
	}
	f.entries[p] = &entry{holder: h, refs: 1}
	f.paths[h] = p
	f.log.Debug("resource loaded", logger.F("path", p), logger.F("bytes", len(data)))
	return h, nil
}

// Release drops one reference to h and releases it when none remain.
func (f *Factory) Release(h *Holder) {
	p, ok := f.paths[h]
	if !ok {
		return
	}
	e := f.entries[p]
	e.refs--
	if e.refs > 0 {
		return
	}
	h.Release()
	delete(f.entries, p)
	delete(f.paths, h)
	f.log.Debug("resource released", logger.F("path", p))
}

// Reload re-reads p and swaps the new description into the cached holder.
// It returns the holder so callers can rebind instances. On failure the
// old description stays live.
func (f *Factory) Reload(p string) (*Holder, error) {
	p = cleanPath(p)
	e, ok := f.entries[p]
	if !ok {
		return nil, fmt.Errorf("reload resource %s: %w", p, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(f.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reload resource %s: %w", p, err)
	}
	if err := e.holder.Reload(data); err != nil {
		f.log.Warn("resource reload rejected, keeping previous content",
			logger.F("path", p), logger.F("error", err))
		return nil, fmt.Errorf("reload resource %s: %w", p, err)
	}
	f.log.Info("resource reloaded", logger.F("path", p))
	return e.holder, nil
}

// PathOf returns the path h was loaded from.
func (f *Factory) PathOf(h *Holder) (string, bool) {
	p, ok := f.paths[h]
	return p, ok
}

// RefCount returns the number of outstanding references to p.
func (f *Factory) RefCount(p string) int {
	if e, ok := f.entries[cleanPath(p)]; ok {
		return e.refs
	}
	return 0
}

// Paths lists cached resource paths in sorted order.
func (f *Factory) Paths() []string {
	out := make([]string, 0, len(f.entries))
	for p := range f.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
