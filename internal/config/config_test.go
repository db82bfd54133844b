package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.SimpleData.MaxCount != DefaultMaxCount {
		t.Errorf("expected max_count %d, got %d", DefaultMaxCount, cfg.SimpleData.MaxCount)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %q", cfg.Logging.Level)
	}
}

func TestParse_Values(t *testing.T) {
	cfg, err := Parse([]byte(`
simpledata:
  max_count: 8
logging:
  level: debug
  format: console
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.SimpleData.MaxCount != 8 {
		t.Errorf("expected 8, got %d", cfg.SimpleData.MaxCount)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
	// Unset logging keys keep their defaults.
	if cfg.Logging.SampleInitial != 100 {
		t.Errorf("expected sampling default to survive, got %d", cfg.Logging.SampleInitial)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "simpledata:\n  max_cnt: 3\n",
		"negative":     "simpledata:\n  max_count: -1\n",
		"not a number": "simpledata:\n  max_count: lots\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParse_EnvOverride(t *testing.T) {
	t.Setenv("SIMPLEDATA_MAX_COUNT", "16")
	cfg, err := Parse([]byte("simpledata:\n  max_count: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SimpleData.MaxCount != 16 {
		t.Errorf("expected env override 16, got %d", cfg.SimpleData.MaxCount)
	}

	t.Setenv("SIMPLEDATA_MAX_COUNT", "many")
	if _, err := Parse(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad env value, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte("simpledata:\n  max_count: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SimpleData.MaxCount != 2 {
		t.Errorf("expected 2, got %d", cfg.SimpleData.MaxCount)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SimpleData.MaxCount != DefaultMaxCount {
		t.Errorf("expected default %d without env, got %d", DefaultMaxCount, cfg.SimpleData.MaxCount)
	}

	t.Setenv("SIMPLEDATA_MAX_COUNT", "1")
	cfg, err = FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SimpleData.MaxCount != 1 {
		t.Errorf("expected env override 1 without a project file, got %d", cfg.SimpleData.MaxCount)
	}
}
