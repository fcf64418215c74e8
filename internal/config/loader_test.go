package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConfigPaths points both config lookups at non-existent files under dir
// and restores the originals on test cleanup.
func mockConfigPaths(t *testing.T, dir string) {
	t.Helper()
	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})
	getUserConfigPath = func() (string, error) {
		return filepath.Join(dir, "no-user-config.yaml"), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(dir, "no-project-config.yaml"), nil
	}
}

func writeConfigFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockConfigPaths(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	require.NotNil(t, cfg.Equalizer.MinLevel)
	require.NotNil(t, cfg.Equalizer.MaxLevel)
	assert.Equal(t, -6, *cfg.Equalizer.MinLevel)
	assert.Equal(t, 6, *cfg.Equalizer.MaxLevel)
	assert.Equal(t, []string{"BASS", "MID", "TREBLE"}, cfg.Equalizer.Bands)
	assert.False(t, cfg.Equalizer.StrictConversion)
	assert.True(t, cfg.Capability.CapabilityEnabled())
	assert.Equal(t, TransportSSE, cfg.Capability.Transport)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	userPath := filepath.Join(tempDir, "user", configFileName)
	writeConfigFile(t, userPath, `
logging:
  level: debug
equalizer:
  minLevel: -10
  maxLevel: 10
`)
	getUserConfigPath = func() (string, error) { return userPath, nil }

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, -10, *cfg.Equalizer.MinLevel)
	assert.Equal(t, 10, *cfg.Equalizer.MaxLevel)
	// Keys absent in the overlay keep their defaults.
	assert.Equal(t, []string{"BASS", "MID", "TREBLE"}, cfg.Equalizer.Bands)
	assert.Equal(t, 8687, cfg.Capability.Port)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	userPath := filepath.Join(tempDir, "user", configFileName)
	writeConfigFile(t, userPath, `
equalizer:
  maxLevel: 10
`)
	projectPath := filepath.Join(tempDir, "project", configFileName)
	writeConfigFile(t, projectPath, `
equalizer:
  maxLevel: 3
  bands: [BASS, TREBLE]
capability:
  port: 9999
  transport: stdio
`)
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, *cfg.Equalizer.MaxLevel)
	assert.Equal(t, []string{"BASS", "TREBLE"}, cfg.Equalizer.Bands)
	assert.Equal(t, 9999, cfg.Capability.Port)
	assert.Equal(t, TransportStdio, cfg.Capability.Transport)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	projectPath := filepath.Join(tempDir, "project", configFileName)
	writeConfigFile(t, projectPath, "equalizer: [not: a: mapping\n")
	getProjectConfigPath = func() (string, error) { return projectPath, nil }

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitZeroLevel(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	projectPath := filepath.Join(tempDir, "project", configFileName)
	writeConfigFile(t, projectPath, `
equalizer:
  minLevel: 0
  maxLevel: 0
`)
	getProjectConfigPath = func() (string, error) { return projectPath, nil }

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// An explicit zero must override the default, not be treated as absent.
	assert.Equal(t, 0, *cfg.Equalizer.MinLevel)
	assert.Equal(t, 0, *cfg.Equalizer.MaxLevel)
}

func TestCapabilityEnabledDefault(t *testing.T) {
	var c CapabilityConfig
	assert.True(t, c.CapabilityEnabled())

	disabled := false
	c.Enabled = &disabled
	assert.False(t, c.CapabilityEnabled())
}
