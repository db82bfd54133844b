package loader

import (
	"bufio"
	"fmt"
	"os"

	"simpledata/internal/loader/parser"
	"simpledata/internal/loader/schema"
)

// YamlLoader reads a .simpledata source file from disk.
type YamlLoader struct {
	File string
	Desc *schema.Desc
}

func NewYamlLoader(fileName string) *YamlLoader {
	return &YamlLoader{File: fileName}
}

func (l *YamlLoader) Load() error {
	file, err := os.Open(l.File)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	desc, err := parser.NewYamlParser().Parse(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("invalid simpledata source %s: %w", l.File, err)
	}
	l.Desc = desc
	return nil
}

func (l *YamlLoader) GetDesc() *schema.Desc {
	return l.Desc
}
