/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable application configuration from a
// YAML file in the per-user application directory. Environment variables act
// as read-only overrides at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName names the per-user application directory and the autorun entry.
const AppName = "SmokeScreen"

// File names inside the application directory.
const (
	ConfigFileName   = "config.yaml"
	SettingsFileName = "settings.json"
	LogFileName      = "smokescreen.log"
)

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// PatchDefaults seed a patch that has no stored record yet.
type PatchDefaults struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
}

// AppConfig is persisted to config.yaml.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	SettingsFile  string        `yaml:"settings_file"` // empty means <AppDir>/settings.json
	Patch         PatchDefaults `yaml:"patch"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Patch:         PatchDefaults{Top: 100, Left: 100, Width: 400, Height: 300, Color: "#80333333"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvAppDir       = "SMK_APP_DIR"
	EnvSettingsFile = "SMK_SETTINGS_FILE"
	EnvLogLevel     = "SMK_LOG_LEVEL"
	EnvLogFormat    = "SMK_LOG_FORMAT"
	EnvLogSource    = "SMK_LOG_SOURCE"
	EnvLogFile      = "SMK_LOG_FILE"
)

// AppDir returns the per-user application directory, e.g. %AppData%\SmokeScreen.
// SMK_APP_DIR replaces it entirely.
func AppDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvAppDir)); v != "" {
		return v, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(os.Getenv("HOME"), ".config")
		}
	}
	if base == "" || base == "." {
		return "", errors.New("cannot resolve application directory")
	}
	return filepath.Join(base, AppName), nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// SettingsPath resolves the patch settings file for cfg.
func SettingsPath(cfg AppConfig) (string, error) {
	if p := strings.TrimSpace(cfg.SettingsFile); p != "" {
		return p, nil
	}
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// Load reads the config file (if present), applies defaults, and merges
// environment overrides. A missing or unparsable file yields defaults; only a
// failure to resolve the directory is reported.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the config YAML, creating the directory if needed.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.SettingsFile); v != "" {
		dst.SettingsFile = v
	}
	// patch defaults: only positive sizes and non-empty colors replace defaults
	if src.Patch.Width > 0 {
		dst.Patch.Width = src.Patch.Width
	}
	if src.Patch.Height > 0 {
		dst.Patch.Height = src.Patch.Height
	}
	if src.Patch.Top != 0 || src.Patch.Left != 0 {
		dst.Patch.Top, dst.Patch.Left = src.Patch.Top, src.Patch.Left
	}
	if v := strings.TrimSpace(src.Patch.Color); v != "" {
		dst.Patch.Color = v
	}
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSettingsFile)); v != "" {
		cfg.SettingsFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.Source = b
		} else {
			lv := strings.ToLower(v)
			cfg.Logging.Source = lv == "on" || lv == "yes"
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the key is overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "settings_file":
		env = EnvSettingsFile
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
