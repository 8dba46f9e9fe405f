package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (VCD2IMAGE_*)
// 2. Config file (.vcd2image/config.yml or .vcd2image/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.rootDir, ".vcd2image"))

	v.SetEnvPrefix("VCD2IMAGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("extract.wave_chunk")
	v.BindEnv("extract.start_time")
	v.BindEnv("extract.end_time")
	v.BindEnv("extract.policy")
	v.BindEnv("render.skin")

	cfg := Default()
	v.SetDefault("extract.wave_chunk", cfg.Extract.WaveChunk)
	v.SetDefault("extract.start_time", cfg.Extract.StartTime)
	v.SetDefault("extract.end_time", cfg.Extract.EndTime)
	v.SetDefault("extract.policy", cfg.Extract.Policy)
	v.SetDefault("render.skin", cfg.Render.Skin)

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
