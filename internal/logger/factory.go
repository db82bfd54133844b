package logger

import (
	"os"
	"strconv"
	"strings"
)

// NewLoggerFromEnv creates a logger based on environment variables
func NewLoggerFromEnv() (Logger, error) {
	return NewZapLogger(ApplyEnv(configFromEnv()))
}

// NewLoggerWithComponent creates a logger with a component field pre-set
func NewLoggerWithComponent(cfg LoggerConfig, component string) (Logger, error) {
	logger, err := NewZapLogger(ApplyEnv(cfg))
	if err != nil {
		return nil, err
	}

	return logger.With(Field{Key: "component", Value: component}), nil
}

// configFromEnv picks the base config from SIMPLEDATA_ENV
func configFromEnv() LoggerConfig {
	if strings.ToLower(os.Getenv("SIMPLEDATA_ENV")) == "production" {
		return DefaultConfig()
	}
	return DevelopmentConfig()
}

// ApplyEnv overrides cfg with any SIMPLEDATA_LOG_* variables that are set
func ApplyEnv(cfg LoggerConfig) LoggerConfig {
	if level := os.Getenv("SIMPLEDATA_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}

	if format := os.Getenv("SIMPLEDATA_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}

	if sampling := os.Getenv("SIMPLEDATA_LOG_SAMPLING"); sampling != "" {
		cfg.EnableSampling = strings.ToLower(sampling) == "true"
	}

	if initial := os.Getenv("SIMPLEDATA_LOG_SAMPLE_INITIAL"); initial != "" {
		if val, err := strconv.Atoi(initial); err == nil {
			cfg.SampleInitial = val
		}
	}

	if thereafter := os.Getenv("SIMPLEDATA_LOG_SAMPLE_THEREAFTER"); thereafter != "" {
		if val, err := strconv.Atoi(thereafter); err == nil {
			cfg.SampleThereafter = val
		}
	}

	if dev := os.Getenv("SIMPLEDATA_LOG_DEVELOPMENT"); dev != "" {
		cfg.Development = strings.ToLower(dev) == "true"
	}

	return cfg
}
