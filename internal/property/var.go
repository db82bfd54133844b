package property

import (
	"fmt"

	"simpledata/internal/loader/schema"
)

// Kind tags the payload carried by a Var.
type Kind uint8

const (
	KindNone Kind = iota
	KindText
	KindFloat  // 32-bit precision
	KindDouble // 64-bit precision
	KindVector3
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindVector3:
		return "vector3"
	default:
		return "none"
	}
}

// Var is a resolved property value.
type Var struct {
	Kind   Kind
	Text   string
	Number float64
	V3     schema.Vector3
}

func TextVar(s string) Var            { return Var{Kind: KindText, Text: s} }
func FloatVar(f float32) Var          { return Var{Kind: KindFloat, Number: float64(f)} }
func DoubleVar(f float64) Var         { return Var{Kind: KindDouble, Number: f} }
func Vector3Var(v schema.Vector3) Var { return Var{Kind: KindVector3, V3: v} }

// Float32 returns the numeric payload at float precision.
func (v Var) Float32() float32 {
	return float32(v.Number)
}

func (v Var) Float64() float64 {
	return v.Number
}

// IsNumber reports whether v carries a float or double.
func (v Var) IsNumber() bool {
	return v.Kind == KindFloat || v.Kind == KindDouble
}

func (v Var) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindFloat:
		return fmt.Sprintf("%g", float32(v.Number))
	case KindDouble:
		return fmt.Sprintf("%g", v.Number)
	case KindVector3:
		return v.V3.String()
	default:
		return "<none>"
	}
}
