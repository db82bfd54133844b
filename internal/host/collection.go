package host

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCollection = errors.New("invalid collection")

// Object is one game object of a collection carrying a simpledata
// component built from a compiled resource.
type Object struct {
	ID         string `yaml:"id"`
	SimpleData string `yaml:"simpledata"`
}

// Collection lists the game objects spawned together.
type Collection struct {
	Name    string   `yaml:"name"`
	Objects []Object `yaml:"objects"`
}

// ParseCollection decodes and validates a collection manifest.
func ParseCollection(r io.Reader) (*Collection, error) {
	var c Collection
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty manifest", ErrInvalidCollection)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
	}

	seen := make(map[string]struct{}, len(c.Objects))
	for i, o := range c.Objects {
		switch {
		case o.ID == "":
			return nil, fmt.Errorf("%w: object %d has no id", ErrInvalidCollection, i)
		case o.SimpleData == "":
			return nil, fmt.Errorf("%w: object %q has no simpledata resource", ErrInvalidCollection, o.ID)
		}
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate object id %q", ErrInvalidCollection, o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	return &c, nil
}

// LoadCollection reads a manifest from fsys.
func LoadCollection(fsys fs.FS, name string) (*Collection, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := ParseCollection(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}
