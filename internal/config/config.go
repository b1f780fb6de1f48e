// Package config provides configuration for the viewer.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the viewer configuration.
type Config struct {
	// ExperimentsDir is the root under which the pipeline writes one
	// directory per experiment.
	ExperimentsDir string `mapstructure:"experiments_dir"`

	// TestResultsDir is the root under which the agent tester writes
	// result files.
	TestResultsDir string `mapstructure:"test_results_dir"`

	// HTTPPort is the listen port for the HTTP API.
	HTTPPort int `mapstructure:"http_port"`

	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the VIEWER_ prefix (e.g. VIEWER_EXPERIMENTS_DIR).
// If cfgFile is empty, ./viewer.yaml is used when present.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("experiments_dir", "experiments")
	v.SetDefault("test_results_dir", "test_results")
	v.SetDefault("http_port", 8080)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("VIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("viewer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
