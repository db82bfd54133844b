package schema

import "fmt"

// Vector3 mirrors the engine's three-float vector.
type Vector3 struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
	Z float32 `yaml:"z" json:"z"`
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Desc is one parsed simpledata description. It is never mutated after
// parsing; a reload replaces the whole value.
type Desc struct {
	Name     string    `yaml:"name" json:"name" jsonschema:"required"`
	F32      float32   `yaml:"f32" json:"f32,omitempty"`
	U32      uint32    `yaml:"u32" json:"u32,omitempty"`
	I32      int32     `yaml:"i32" json:"i32,omitempty"`
	U64      uint64    `yaml:"u64" json:"u64,omitempty"`
	I64      int64     `yaml:"i64" json:"i64,omitempty"`
	V3       Vector3   `yaml:"v3" json:"v3,omitempty"`
	ArrayF32 []float32 `yaml:"array_f32" json:"array_f32,omitempty"`
}


// Source and compiled file extensions.
const (
	SourceExt   = ".simpledata"
	CompiledExt = ".simpledatac"
)
