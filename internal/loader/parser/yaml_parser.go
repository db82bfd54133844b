package parser

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"simpledata/internal/loader/schema"
)

type FieldType struct {
	Required bool
}

var (
	DescFields = map[string]FieldType{
		"name":      {Required: true},
		"f32":       {Required: false},
		"u32":       {Required: false},
		"i32":       {Required: false},
		"u64":       {Required: false},
		"i64":       {Required: false},
		"v3":        {Required: false},
		"array_f32": {Required: false},
	}
	Vector3Fields = map[string]FieldType{
		"x": {Required: false},
		"y": {Required: false},
		"z": {Required: false},
	}
)

var SourceFields = map[string]map[string]FieldType{
	"simpledata": DescFields,
	"v3":         Vector3Fields,
}

// YamlParser reads .simpledata sources:
//
//	name: "hero"
//	f32: 1.5
//	u32: 2
//	i32: -3
//	u64: 4
//	i64: -5
//	v3: {x: 1, y: 2, z: 3}   # or [1, 2, 3]
//	array_f32: [10, 20, 30]
type YamlParser struct {
}

func NewYamlParser() *YamlParser {
	return &YamlParser{}
}

func (p *YamlParser) Parse(r io.Reader) (*schema.Desc, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, ErrEmptySource
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidYamlFormat, err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, ErrEmptySource
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping, got %s (line %d)", ErrInvalidYamlFormat, kindName(doc.Kind), doc.Line)
	}

	keys, err := mappingKeys(doc, "simpledata")
	if err != nil {
		return nil, err
	}
	if key, err := checkMissingRequiredKey("simpledata", keys); err != nil {
		return nil, &requiredFieldError{parentKey: "simpledata", field: key, line: doc.Line}
	}

	desc := &schema.Desc{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i].Value, doc.Content[i+1]
		if err := p.parseField(desc, key, value); err != nil {
			return nil, &invalidFieldError{parentKey: "simpledata", field: key, line: value.Line, reason: err}
		}
	}
	return desc, nil
}

func (p *YamlParser) parseField(desc *schema.Desc, key string, value *yaml.Node) error {
	var err error
	switch key {
	case "name":
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
			return fmt.Errorf("%w: expected string", ErrInvalidType)
		}
		desc.Name = value.Value
	case "f32":
		desc.F32, err = toFloat32(value)
	case "u32":
		desc.U32, err = toUint32(value)
	case "i32":
		desc.I32, err = toInt32(value)
	case "u64":
		desc.U64, err = toUint64(value)
	case "i64":
		desc.I64, err = toInt64(value)
	case "v3":
		desc.V3, err = p.parseVector3(value)
	case "array_f32":
		desc.ArrayF32, err = p.parseFloatArray(value)
	}
	return err
}

func (p *YamlParser) parseVector3(node *yaml.Node) (schema.Vector3, error) {
	var v schema.Vector3
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 3 {
			return v, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidType, len(node.Content))
		}
		dst := []*float32{&v.X, &v.Y, &v.Z}
		for i, c := range node.Content {
			f, err := toFloat32(c)
			if err != nil {
				return v, fmt.Errorf("component %d: %w", i, err)
			}
			*dst[i] = f
		}
		return v, nil

	case yaml.MappingNode:
		if _, err := mappingKeys(node, "v3"); err != nil {
			return v, err
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, c := node.Content[i].Value, node.Content[i+1]
			f, err := toFloat32(c)
			if err != nil {
				return v, fmt.Errorf("component %q (line %d): %w", key, c.Line, err)
			}
			switch key {
			case "x":
				v.X = f
			case "y":
				v.Y = f
			case "z":
				v.Z = f
			}
		}
		return v, nil

	default:
		return v, fmt.Errorf("%w: expected mapping or sequence, got %s", ErrInvalidType, kindName(node.Kind))
	}
}

func (p *YamlParser) parseFloatArray(node *yaml.Node) ([]float32, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected sequence, got %s", ErrInvalidType, kindName(node.Kind))
	}
	out := make([]float32, 0, len(node.Content))
	for i, c := range node.Content {
		f, err := toFloat32(c)
		if err != nil {
			return nil, fmt.Errorf("element %d (line %d): %w", i, c.Line, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// mappingKeys indexes a mapping node by key, rejecting unknown and repeated keys.
func mappingKeys(node *yaml.Node, section string) (map[string]*yaml.Node, error) {
	keys := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if err := isValidKey(k.Value, section); err != nil {
			return nil, &invalidFieldError{parentKey: section, field: k.Value, line: k.Line, reason: err}
		}
		if _, dup := keys[k.Value]; dup {
			return nil, &invalidFieldError{parentKey: section, field: k.Value, line: k.Line, reason: ErrDuplicateKey}
		}
		keys[k.Value] = v
	}
	return keys, nil
}
