package host

import "simpledata/internal/component"

// GameObject names an entity so scripts can address it.
type GameObject struct {
	ID string
}

// SimpleData binds an entity to its component instance. Path is the
// canonical resource path the instance was created from.
type SimpleData struct {
	Handle component.Handle
	Path   string
}
