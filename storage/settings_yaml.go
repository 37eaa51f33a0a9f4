// Package storage persists user settings as YAML under the user config
// directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StudyLight/stopwatch"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Settings holds the runtime configuration of the application.
type Settings struct {
	Policy       stopwatch.Policy
	TickInterval time.Duration
	AdjustStep   time.Duration

	// Backdrop opacity while Running/Breaking vs Paused/Stopped.
	ActiveOpacity float64
	IdleOpacity   float64

	// BreakLogPath overrides the default break log location when set.
	BreakLogPath string
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		Policy:        stopwatch.DefaultPolicy(),
		TickInterval:  stopwatch.TickInterval,
		AdjustStep:    stopwatch.AdjustStep,
		ActiveOpacity: 0.85,
		IdleOpacity:   0.55,
	}
}

type yamlSettings struct {
	StudyCutoffSeconds        int     `yaml:"study_cutoff_seconds"`
	LongBreakThresholdSeconds int     `yaml:"long_break_threshold_seconds"`
	LongBreakDivisor          float64 `yaml:"long_break_divisor"`
	ShortBreakDivisor         float64 `yaml:"short_break_divisor"`
	TickIntervalMs            int     `yaml:"tick_interval_ms"`
	AdjustStepSeconds         int     `yaml:"adjust_step_seconds"`
	ActiveOpacity             float64 `yaml:"active_opacity"`
	IdleOpacity               float64 `yaml:"idle_opacity"`
	BreakLogPath              string  `yaml:"break_log_path"`
}

// LoadSettings reads user settings from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (Settings, error) {
	settings := DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user settings to YAML.
func SaveSettings(appName string, settings Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		StudyCutoffSeconds:        int(settings.Policy.StudyCutoff / time.Second),
		LongBreakThresholdSeconds: int(settings.Policy.LongBreakThreshold / time.Second),
		LongBreakDivisor:          settings.Policy.LongBreakDivisor,
		ShortBreakDivisor:         settings.Policy.ShortBreakDivisor,
		TickIntervalMs:            int(settings.TickInterval / time.Millisecond),
		AdjustStepSeconds:         int(settings.AdjustStep / time.Second),
		ActiveOpacity:             settings.ActiveOpacity,
		IdleOpacity:               settings.IdleOpacity,
		BreakLogPath:              settings.BreakLogPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.StudyCutoffSeconds > 0 {
		settings.Policy.StudyCutoff = time.Duration(fileData.StudyCutoffSeconds) * time.Second
	}
	if fileData.LongBreakThresholdSeconds > 0 {
		settings.Policy.LongBreakThreshold = time.Duration(fileData.LongBreakThresholdSeconds) * time.Second
	}
	if fileData.LongBreakDivisor > 1 {
		settings.Policy.LongBreakDivisor = fileData.LongBreakDivisor
	}
	if fileData.ShortBreakDivisor > 1 {
		settings.Policy.ShortBreakDivisor = fileData.ShortBreakDivisor
	}
	if fileData.TickIntervalMs > 0 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}
	if fileData.AdjustStepSeconds > 0 {
		settings.AdjustStep = time.Duration(fileData.AdjustStepSeconds) * time.Second
	}

	if fileData.ActiveOpacity >= 0.2 && fileData.ActiveOpacity <= 1 {
		settings.ActiveOpacity = fileData.ActiveOpacity
	}
	if fileData.IdleOpacity >= 0.2 && fileData.IdleOpacity <= 1 {
		settings.IdleOpacity = fileData.IdleOpacity
	}

	settings.BreakLogPath = fileData.BreakLogPath
}
