// Package builder compiles .simpledata sources into the .simpledatac
// format loaded at runtime.
package builder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"simpledata/internal/loader/codec"
	"simpledata/internal/loader/loader"
	"simpledata/internal/loader/parser"
	"simpledata/internal/loader/schema"
)

// Transform is applied to each parsed desc before encoding.
type Transform func(*schema.Desc) error

type Builder struct {
	parser     parser.Parser
	transforms []Transform
}

func New(transforms ...Transform) *Builder {
	return &Builder{parser: parser.NewParser(), transforms: transforms}
}

// Build compiles one source.
func (b *Builder) Build(src io.Reader) ([]byte, error) {
	desc, err := b.parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return b.compile(desc)
}

func (b *Builder) compile(desc *schema.Desc) ([]byte, error) {
	for _, t := range b.transforms {
		if err := t(desc); err != nil {
			return nil, fmt.Errorf("transform %q: %w", desc.Name, err)
		}
	}
	return codec.Marshal(desc), nil
}

// BuildFile compiles in and writes the result next to it, or into outDir
// when set. It returns the output path.
func (b *Builder) BuildFile(in, outDir string) (string, error) {
	if filepath.Ext(in) != schema.SourceExt {
		return "", fmt.Errorf("%s: expected %s input", in, schema.SourceExt)
	}

	l := loader.NewYamlLoader(in)
	if err := l.Load(); err != nil {
		return "", err
	}
	data, err := b.compile(l.GetDesc())
	if err != nil {
		return "", err
	}

	out := OutputPath(in, outDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// OutputPath maps a source path to its compiled path.
func OutputPath(in, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(in), schema.SourceExt) + schema.CompiledExt
	if outDir == "" {
		return filepath.Join(filepath.Dir(in), base)
	}
	return filepath.Join(outDir, base)
}
