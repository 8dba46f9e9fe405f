// Package config loads vcd2image settings from defaults, an optional
// config file and VCD2IMAGE_* environment variables.
package config

// Config represents the complete vcd2image configuration.
// It can be loaded from .vcd2image/config.yml with environment variable
// overrides.
type Config struct {
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
}

// ExtractConfig holds the sampling parameters of the extraction pipeline.
type ExtractConfig struct {
	WaveChunk int    `yaml:"wave_chunk" mapstructure:"wave_chunk"` // samples per WaveJSON group
	StartTime uint64 `yaml:"start_time" mapstructure:"start_time"` // first timestamp to sample
	EndTime   uint64 `yaml:"end_time" mapstructure:"end_time"`     // last timestamp, 0 = unbounded
	Policy    string `yaml:"policy" mapstructure:"policy"`         // "every-timestamp" or "clock-falling-edge"
}

// RenderConfig holds HTML rendering settings.
type RenderConfig struct {
	Skin string `yaml:"skin" mapstructure:"skin"` // WaveDrom skin name
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			WaveChunk: 20,
			StartTime: 0,
			EndTime:   0,
			Policy:    "every-timestamp",
		},
		Render: RenderConfig{
			Skin: "default",
		},
	}
}
