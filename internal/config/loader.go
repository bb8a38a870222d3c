package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kyaoi/mdslides/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/mdslides"
	projectConfigDir = ".mdslides"
	configFileName   = "config.yaml"
)

// LoadConfig layers the default, user, project and explicit configuration
// files. explicitPath may be empty; when set, the file must exist.
func LoadConfig(explicitPath string) (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		logging.Warn("config", "could not determine user config path: %v", err)
	} else if config, err = overlayIfExists(config, userConfigPath); err != nil {
		return Config{}, err
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("config", "could not determine project config path: %v", err)
	} else if config, err = overlayIfExists(config, projectConfigPath); err != nil {
		return Config{}, err
	}

	if explicitPath != "" {
		overlay, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if err := c.Navigation.Controller().Validate(); err != nil {
		return fmt.Errorf("navigation: %w", err)
	}
	switch c.Display.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("display: unknown theme %q", c.Display.Theme)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func overlayIfExists(base Config, path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	logging.Debug("config", "applied %s", path)
	return mergeConfigs(base, overlay), nil
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
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	nav := overlay.Navigation
	if nav.TransitionWindow != 0 {
		merged.Navigation.TransitionWindow = nav.TransitionWindow
	}
	if nav.WheelCooldown != 0 {
		merged.Navigation.WheelCooldown = nav.WheelCooldown
	}
	if nav.AutoPlayInterval != 0 {
		merged.Navigation.AutoPlayInterval = nav.AutoPlayInterval
	}
	switch {
	case nav.HintDuration < 0:
		merged.Navigation.HintDuration = 0
	case nav.HintDuration > 0:
		merged.Navigation.HintDuration = nav.HintDuration
	}
	if nav.MinSwipeDistance != nil {
		v := *nav.MinSwipeDistance
		merged.Navigation.MinSwipeDistance = &v
	}
	if nav.MaxSwipeDuration != 0 {
		merged.Navigation.MaxSwipeDuration = nav.MaxSwipeDuration
	}

	if overlay.Display.Theme != "" {
		merged.Display.Theme = strings.ToLower(overlay.Display.Theme)
	}
	if overlay.Display.AutoPlay != nil {
		v := *overlay.Display.AutoPlay
		merged.Display.AutoPlay = &v
	}

	if overlay.Log.Level != "" {
		merged.Log.Level = overlay.Log.Level
	}
	if overlay.Log.File != "" {
		merged.Log.File = overlay.Log.File
	}
	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
