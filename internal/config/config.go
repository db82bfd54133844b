// Package config reads the project settings that the simpledata extension
// and its host runtime consume.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"simpledata/internal/logger"
)

const (
	// DefaultMaxCount is the per-world component limit used when the
	// project does not set simpledata.max_count.
	DefaultMaxCount = 1024

	// MaxCountKey names the setting in log output and error messages.
	MaxCountKey = "simpledata.max_count"

	envMaxCount = "SIMPLEDATA_MAX_COUNT"
)

var ErrInvalidConfig = errors.New("invalid project config")

type SimpleData struct {
	MaxCount uint32 `yaml:"max_count"`
}

// Config is the parsed project file.
type Config struct {
	SimpleData SimpleData          `yaml:"simpledata"`
	Logging    logger.LoggerConfig `yaml:"logging"`
}

// Default returns the configuration used when no project file is given.
func Default() Config {
	return Config{
		SimpleData: SimpleData{MaxCount: DefaultMaxCount},
		Logging:    logger.DefaultConfig(),
	}
}

// Parse decodes a project file. Keys missing from data keep their default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Logging = logger.ApplyEnv(cfg.Logging)
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied, for runs
// without a project file.
func FromEnv() (Config, error) {
	return Parse(nil)
}

// Load reads and parses the project file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read project config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	raw, ok := os.LookupEnv(envMaxCount)
	if !ok || raw == "" {
		return nil
	}
	v, err := cast.ToUint32E(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, envMaxCount, raw, err)
	}
	cfg.SimpleData.MaxCount = v
	return nil
}
