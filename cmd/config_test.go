package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "config", configBaseName)
	assert.Equal(t, "config.toml", configFileName)
	assert.Equal(t, "tps", appDirName)
	assert.Equal(t, "project_homes", homesKey)
	assert.Equal(t, "projects", projectsKey)
	assert.Equal(t, "skip_current", skipCurrentKey)
	assert.Equal(t, "sort_mode", sortModeKey)
	assert.Equal(t, "cache.path", cachePathKey)
	assert.Equal(t, "cache.capacity", cacheCapacityKey)
	assert.Equal(t, "alphabetical", defaultSortMode)
	assert.Equal(t, 64, defaultCacheCapacity)
	assert.Equal(t, "TPS", envPrefix)
}

func TestConfigFilePath(t *testing.T) {
	path := configFilePath()

	assert.Contains(t, path, appDirName)
	assert.Contains(t, path, configFileName)
}

func TestDefaultCachePath(t *testing.T) {
	assert.Contains(t, defaultCachePath(), "access_cache.toml")
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"padded", "  info  ", slog.LevelInfo},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}
