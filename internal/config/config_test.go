package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 20, cfg.Extract.WaveChunk)
	assert.Equal(t, uint64(0), cfg.Extract.StartTime)
	assert.Equal(t, uint64(0), cfg.Extract.EndTime)
	assert.Equal(t, "every-timestamp", cfg.Extract.Policy)
	assert.Equal(t, "default", cfg.Render.Skin)
	require.NoError(t, cfg.Validate())
}

func TestLoader_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_ConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, ".vcd2image")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "extract:\n  wave_chunk: 8\n  policy: clock-falling-edge\nrender:\n  skin: narrow\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Extract.WaveChunk)
	assert.Equal(t, "clock-falling-edge", cfg.Extract.Policy)
	assert.Equal(t, "narrow", cfg.Render.Skin)
	// untouched keys keep their defaults
	assert.Equal(t, uint64(0), cfg.Extract.StartTime)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".vcd2image")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"),
		[]byte("extract:\n  wave_chunk: 8\n"), 0644))

	t.Setenv("VCD2IMAGE_EXTRACT_WAVE_CHUNK", "32")
	t.Setenv("VCD2IMAGE_RENDER_SKIN", "lowkey")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Extract.WaveChunk)
	assert.Equal(t, "lowkey", cfg.Render.Skin)
}

func TestLoader_InvalidValues(t *testing.T) {
	t.Setenv("VCD2IMAGE_EXTRACT_WAVE_CHUNK", "0")
	_, err := NewLoader(t.TempDir()).Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative chunk", func(c *Config) { c.Extract.WaveChunk = -1 }, "wave_chunk"},
		{"end before start", func(c *Config) { c.Extract.StartTime = 10; c.Extract.EndTime = 5 }, "end_time"},
		{"unknown policy", func(c *Config) { c.Extract.Policy = "sometimes" }, "policy"},
		{"empty skin", func(c *Config) { c.Render.Skin = "" }, "skin"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
