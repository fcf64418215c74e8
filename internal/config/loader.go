package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/eqbridge"
	projectConfigDir = ".eqbridge"
	configFileName   = "config.yaml"
)

// LoadConfig loads the eqbridge configuration by layering default, user, and
// project settings. A missing file is not an error; a file that fails to
// parse is.
func LoadConfig() (Config, error) {
	cfg := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userCfg, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			cfg = mergeConfigs(cfg, userCfg)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectCfg, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			cfg = mergeConfigs(cfg, projectCfg)
		}
	}

	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Only keys present
// in the overlay override the base.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	if overlay.Equalizer.MinLevel != nil {
		merged.Equalizer.MinLevel = overlay.Equalizer.MinLevel
	}
	if overlay.Equalizer.MaxLevel != nil {
		merged.Equalizer.MaxLevel = overlay.Equalizer.MaxLevel
	}
	if overlay.Equalizer.DefaultLevel != nil {
		merged.Equalizer.DefaultLevel = overlay.Equalizer.DefaultLevel
	}
	if overlay.Equalizer.Bands != nil {
		merged.Equalizer.Bands = overlay.Equalizer.Bands
	}
	if overlay.Equalizer.StrictConversion {
		merged.Equalizer.StrictConversion = true
	}

	if overlay.Capability.Enabled != nil {
		merged.Capability.Enabled = overlay.Capability.Enabled
	}
	if overlay.Capability.Host != "" {
		merged.Capability.Host = overlay.Capability.Host
	}
	if overlay.Capability.Port != 0 {
		merged.Capability.Port = overlay.Capability.Port
	}
	if overlay.Capability.Transport != "" {
		merged.Capability.Transport = overlay.Capability.Transport
	}

	return merged
}
