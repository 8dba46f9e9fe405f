package config

import (
	"fmt"

	"github.com/vcdkit/vcd2image/internal/vcd"
)

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	if c.Extract.WaveChunk <= 0 {
		return fmt.Errorf("extract.wave_chunk must be positive, got %d", c.Extract.WaveChunk)
	}
	if c.Extract.EndTime != 0 && c.Extract.EndTime < c.Extract.StartTime {
		return fmt.Errorf("extract.end_time %d is before extract.start_time %d",
			c.Extract.EndTime, c.Extract.StartTime)
	}
	if _, err := vcd.ParseSamplingPolicy(c.Extract.Policy); err != nil {
		return fmt.Errorf("extract.policy: %w", err)
	}
	if c.Render.Skin == "" {
		return fmt.Errorf("render.skin must not be empty")
	}
	return nil
}
