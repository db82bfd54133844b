package schema

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes the .simpledata source format for editors. v3
// accepts either an {x, y, z} object or a three-number array.
func JSONSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	root := reflector.ReflectFromType(reflect.TypeOf(Desc{}))
	root.Title = "simpledata"
	root.Description = "Source description compiled to " + CompiledExt

	vec := reflector.ReflectFromType(reflect.TypeOf(Vector3{}))
	vec.Version = ""
	root.Properties.Set("v3", &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			vec,
			{Type: "array", Items: &jsonschema.Schema{Type: "number"}},
		},
	})
	return root
}
