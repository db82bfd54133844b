package loader

import (
	"simpledata/internal/loader/schema"
)

type Loader interface {
	Load() error
	GetDesc() *schema.Desc
}

func NewLoader(loaderType string, filename string) Loader {
	switch loaderType {
	case "yaml":
		return NewYamlLoader(filename)
	default:
		return NewYamlLoader(filename)
	}
}
