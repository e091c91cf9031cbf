// Package config handles loading routine.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/routine/internal/paths"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = "routine.toml"

// Environment variables that override file settings.
const (
	EnvStateDir   = "ROUTINE_STATE_DIR"
	EnvPresetsDir = "ROUTINE_PRESETS_DIR"
)

// Config represents the routine.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Presets Presets `toml:"presets"`
	Tasks   Tasks   `toml:"tasks"`
}

// Storage selects where the task collection lives.
type Storage struct {
	// Backend is "dir" (a JSON document on disk) or "sqlite".
	Backend string `toml:"backend"`

	// Dir overrides the state directory. "~/" is expanded.
	Dir string `toml:"dir"`
}

// Presets configures the preset catalog.
type Presets struct {
	// Dir overrides the preset directory. "~/" is expanded.
	Dir string `toml:"dir"`
}

// Tasks contains task store behavior.
type Tasks struct {
	// ExpireOverdueOnResume deletes overdue unfinished tasks every time the
	// CLI starts.
	ExpireOverdueOnResume bool `toml:"expire-overdue-on-resume"`
}

// Load loads configuration from the project directory and the global config
// file, then applies environment overrides. Missing files are not errors.
func Load(projectDir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	return merged, nil
}

// GlobalPath returns the location of the global config file.
func GlobalPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Presets.Dir = mergeString(projectMeta.IsDefined("presets", "dir"), projectCfg.Presets.Dir, globalCfg.Presets.Dir)
	if projectMeta.IsDefined("tasks", "expire-overdue-on-resume") {
		merged.Tasks.ExpireOverdueOnResume = projectCfg.Tasks.ExpireOverdueOnResume
	} else if globalMeta.IsDefined("tasks", "expire-overdue-on-resume") {
		merged.Tasks.ExpireOverdueOnResume = globalCfg.Tasks.ExpireOverdueOnResume
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv(EnvStateDir)); dir != "" {
		cfg.Storage.Dir = dir
	}
	if dir := strings.TrimSpace(os.Getenv(EnvPresetsDir)); dir != "" {
		cfg.Presets.Dir = dir
	}
}

// StateDir returns the configured state directory or the default.
func (c *Config) StateDir() (string, error) {
	dir, err := paths.ResolveWithDefault(c.Storage.Dir, paths.DefaultStateDir)
	if err != nil {
		return "", err
	}
	return paths.ExpandHome(dir)
}

// PresetsDir returns the configured preset directory or the default.
func (c *Config) PresetsDir() (string, error) {
	dir, err := paths.ResolveWithDefault(c.Presets.Dir, paths.DefaultPresetsDir)
	if err != nil {
		return "", err
	}
	return paths.ExpandHome(dir)
}
