// Package config provides configuration types and utilities for the
// chicken food safety service. This file contains the main unified
// configuration entry point.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for both the server and the
// client. A single YAML file is the entry point for everything.
type Config struct {
	// Version and metadata
	Version     string `yaml:"version,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Agent identity advertised in A2A envelopes
	Agent AgentConfig `yaml:"agent,omitempty"`

	// Server settings
	Server ServerConfig `yaml:"server,omitempty"`

	// Client settings
	Client ClientConfig `yaml:"client,omitempty"`

	// Food classification settings
	Safety SafetyConfig `yaml:"safety,omitempty"`

	// Logger settings
	Logger LoggerConfig `yaml:"logger,omitempty"`

	// Metrics settings
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// Validate implements ConfigInterface.Validate for Config
func (c *Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent validation failed: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("client validation failed: %w", err)
	}
	if err := c.Safety.Validate(); err != nil {
		return fmt.Errorf("safety validation failed: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger validation failed: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics validation failed: %w", err)
	}
	return nil
}

// SetDefaults implements ConfigInterface.SetDefaults for Config
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	c.Agent.SetDefaults()
	c.Server.SetDefaults()
	c.Client.SetDefaults()
	c.Safety.SetDefaults()
	c.Logger.SetDefaults()
	c.Metrics.SetDefaults()
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig loads a configuration file, expands environment variables in it
// (supports ${VAR}, ${VAR:-default} and $VAR), applies defaults and validates
// the result. Environment variables from .env files are loaded first.
func LoadConfig(path string) (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}
