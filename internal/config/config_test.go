package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strike.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.GridSize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "coords.txt", cfg.OutputFile)
	assert.Equal(t, 8, cfg.RenderScale)
	assert.Empty(t, cfg.RenderPath)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("STRIKE_GRID_SIZE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "grid_size: 250\nlog_level: debug\nrender_path: map.png\nseed: 9\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.GridSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "map.png", cfg.RenderPath)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, "coords.txt", cfg.OutputFile, "unset keys keep defaults")
}

func TestLoad_FileFromEnvironment(t *testing.T) {
	path := writeConfig(t, "grid_size: 64\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.GridSize)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "grid_size: 64\nlog_format: json\n")
	t.Setenv("STRIKE_GRID_SIZE", "32")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.GridSize)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "grid: 10\n"},
		{"bad yaml", "grid_size: [\n"},
		{"zero grid", "grid_size: 0\n"},
		{"bad level", "log_level: loud\n"},
		{"bad scale", "render_scale: 64\n"},
		{"empty output", "output_file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvironment(t *testing.T) {
	cfg := Default()
	err := cfg.loadEnvironment(envMap(map[string]string{
		"STRIKE_GRID_SIZE":    "20",
		"STRIKE_LOG_LEVEL":    "DEBUG",
		"STRIKE_LOG_FORMAT":   "JSON",
		"STRIKE_OUTPUT_FILE":  "targets.txt",
		"STRIKE_SEED":         "77",
		"STRIKE_RENDER_PATH":  "out.png",
		"STRIKE_RENDER_SCALE": "4",
		"STRIKE_GRID_SPACING": "0",
	}))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		GridSize:    20,
		LogLevel:    "debug",
		LogFormat:   "json",
		OutputFile:  "targets.txt",
		Seed:        77,
		RenderPath:  "out.png",
		RenderScale: 4,
		GridSpacing: 0,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvironment_Invalid(t *testing.T) {
	for _, key := range []string{"STRIKE_GRID_SIZE", "STRIKE_SEED", "STRIKE_RENDER_SCALE", "STRIKE_GRID_SPACING"} {
		t.Run(key, func(t *testing.T) {
			err := Default().loadEnvironment(envMap(map[string]string{key: "many"}))
			assert.Error(t, err)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	cfg := Default()
	cfg.GridSize = -1
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gridsize must be greater than 0")
	assert.Contains(t, err.Error(), "logformat must be one of: console json")
}

func TestValidate_GridSizeLimit(t *testing.T) {
	cfg := Default()
	cfg.GridSize = 1 << 16
	require.NoError(t, cfg.Validate())

	cfg.GridSize = 1<<16 + 1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gridsize must be at most 65536")
}
