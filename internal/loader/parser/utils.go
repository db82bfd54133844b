package parser

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

func isValidKey(key string, section string) error {
	f := SourceFields[section]
	if _, ok := f[key]; !ok {
		return ErrUnknownField
	}
	return nil
}

func checkMissingRequiredKey(section string, node map[string]*yaml.Node) (string, error) {
	f := SourceFields[section]
	for key, field := range f {
		if field.Required {
			if _, ok := node[key]; !ok {
				return key, ErrRequiredField
			}
		}
	}
	return "", nil
}

// scalar decodes a scalar node into its natural Go value.
func scalar(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: expected scalar, got %s", ErrInvalidType, kindName(node.Kind))
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}
	return raw, nil
}

func toFloat32(node *yaml.Node) (float32, error) {
	raw, err := scalar(node)
	if err != nil {
		return 0, err
	}
	if _, ok := raw.(bool); ok {
		return 0, fmt.Errorf("%w: expected number, got bool", ErrInvalidType)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
		return 0, fmt.Errorf("%w: %g does not fit in float32", ErrOutOfRange, v)
	}
	return float32(v), nil
}

// integer rejects fractional and boolean scalars before handing off to cast.
func integer(node *yaml.Node) (any, error) {
	raw, err := scalar(node)
	if err != nil {
		return nil, err
	}
	switch raw.(type) {
	case float64, float32:
		return nil, fmt.Errorf("%w: expected integer, got %q", ErrInvalidType, node.Value)
	case bool:
		return nil, fmt.Errorf("%w: expected integer, got bool", ErrInvalidType)
	}
	return raw, nil
}

func toInt64(node *yaml.Node) (int64, error) {
	raw, err := integer(node)
	if err != nil {
		return 0, err
	}
	if u, ok := raw.(uint64); ok && u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d does not fit in int64", ErrOutOfRange, u)
	}
	v, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}
	return v, nil
}

func toUint64(node *yaml.Node) (uint64, error) {
	raw, err := integer(node)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return v, nil
}

func toInt32(node *yaml.Node) (int32, error) {
	v, err := toInt64(node)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit in int32", ErrOutOfRange, v)
	}
	return int32(v), nil
}

func toUint32(node *yaml.Node) (uint32, error) {
	v, err := toUint64(node)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit in uint32", ErrOutOfRange, v)
	}
	return uint32(v), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
