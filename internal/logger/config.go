package logger

// LoggerConfig defines logging configuration
type LoggerConfig struct {
	Level            string `yaml:"level" env:"SIMPLEDATA_LOG_LEVEL"`
	Format           string `yaml:"format" env:"SIMPLEDATA_LOG_FORMAT"` // json or console
	EnableSampling   bool   `yaml:"enable_sampling" env:"SIMPLEDATA_LOG_SAMPLING"`
	SampleInitial    int    `yaml:"sample_initial" env:"SIMPLEDATA_LOG_SAMPLE_INITIAL"`
	SampleThereafter int    `yaml:"sample_thereafter" env:"SIMPLEDATA_LOG_SAMPLE_THEREAFTER"`
	Development      bool   `yaml:"development" env:"SIMPLEDATA_LOG_DEVELOPMENT"`
}

// DefaultConfig returns the release build configuration
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "info",
		Format:           "json",
		EnableSampling:   true,
		SampleInitial:    100,  // First 100 messages per level pass through
		SampleThereafter: 1000, // Then 1 in 1000
		Development:      false,
	}
}

// DevelopmentConfig returns the configuration used while iterating on a project
func DevelopmentConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "debug",
		Format:           "console",
		EnableSampling:   false,
		SampleInitial:    0,
		SampleThereafter: 0,
		Development:      true,
	}
}
