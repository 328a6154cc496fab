// Package config provides configuration management for the xl driver.
//
// This package handles loading and parsing YAML configuration files,
// providing type-safe access to all configuration parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("config validation and set defaults failed: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, suitable
// for running against a local hypervisor without a config file.
func Default() *Config {
	cfg := &Config{}
	// Defaults never fail validation.
	_ = cfg.validateAndSetDefaults()
	return cfg
}

// validateAndSetDefaults checks that all mandatory fields in the
// configuration are set and fills in default values for optional fields.
func (c *Config) validateAndSetDefaults() error {
	var errors []string

	if c.XLPath == "" {
		c.XLPath = DefaultXLPath
	}
	if !filepath.IsAbs(c.XLPath) {
		errors = append(errors, fmt.Sprintf("'xl_path' must be an absolute path, got '%s'", c.XLPath))
	}

	if c.ConfigRoot == "" {
		c.ConfigRoot = DefaultConfigRoot
	}
	if !filepath.IsAbs(c.ConfigRoot) {
		errors = append(errors, fmt.Sprintf("'config_root' must be an absolute path, got '%s'", c.ConfigRoot))
	}

	if c.Disk.VolumeGroup == "" {
		c.Disk.VolumeGroup = DefaultVolumeGroup
	}
	if c.Disk.Target == "" {
		c.Disk.Target = DefaultDiskTarget
	}
	if c.Disk.Mode == "" {
		c.Disk.Mode = DefaultDiskMode
	}
	if c.Disk.Mode != "w" && c.Disk.Mode != "r" {
		errors = append(errors, fmt.Sprintf("disk: 'mode' must be 'w' or 'r', got '%s'", c.Disk.Mode))
	}

	if c.Graphics.VNCListen == "" {
		c.Graphics.VNCListen = DefaultVNCListen
	}

	if c.CommandTimeoutSeconds == 0 {
		c.CommandTimeoutSeconds = DefaultCommandTimeoutSeconds
	}
	if c.CommandTimeoutSeconds < 0 {
		errors = append(errors, fmt.Sprintf("'command_timeout_seconds' must be positive, got %d", c.CommandTimeoutSeconds))
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	} else if !isValidLogLevel(c.LogLevel) {
		errors = append(errors, fmt.Sprintf("'log_level' must be one of error, warn, info, debug, got '%s'", c.LogLevel))
	}

	if c.Remote != nil {
		if c.Remote.Host == "" {
			errors = append(errors, "remote: 'host' is required")
		}
		if c.Remote.User == "" {
			c.Remote.User = "root"
		}
		if c.Remote.KeyPath == "" && c.Remote.Password == "" {
			errors = append(errors, "remote: one of 'key_path' or 'password' is required")
		}
		if c.Remote.KeyPath != "" {
			expanded, err := expandTilde(c.Remote.KeyPath)
			if err != nil {
				errors = append(errors, fmt.Sprintf("remote.key_path: failed to expand path: %v", err))
			} else {
				c.Remote.KeyPath = expanded
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsRemote returns true if xl commands run on a remote host over SSH
func (c *Config) IsRemote() bool {
	return c.Remote != nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "error", "warn", "info", "debug":
		return true
	}
	return false
}

// expandTilde expands a leading ~ in a path to the user's home directory
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}

	// Handle ~/path format
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}

	// Just ~ prefix without slash - return as is (edge case like ~username not supported)
	return path, nil
}
