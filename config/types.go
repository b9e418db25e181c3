// Package config provides configuration types and utilities for the
// chicken food safety service. This file contains the per-section
// configuration types.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// normalizeFood mirrors the normalization applied by the safety package.
func normalizeFood(food string) string {
	return strings.ToLower(strings.TrimSpace(food))
}

// ============================================================================
// AGENT IDENTITY
// ============================================================================

// AgentConfig describes the agent identity placed in the sender block of
// every A2A envelope the server emits.
type AgentConfig struct {
	ID      string `yaml:"id"`      // Agent identifier, e.g. "chicken-food-safety-service"
	Name    string `yaml:"name"`    // Human readable name
	Version string `yaml:"version"` // Agent version string
}

// Validate implements ConfigInterface.Validate for AgentConfig
func (c *AgentConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("agent id cannot be empty")
	}
	return nil
}

// SetDefaults implements ConfigInterface.SetDefaults for AgentConfig
func (c *AgentConfig) SetDefaults() {
	if c.ID == "" {
		c.ID = "chicken-food-safety-service"
	}
	if c.Name == "" {
		c.Name = "Chicken Food Safety Service"
	}
	if c.Version == "" {
		c.Version = "1.0"
	}
}

// ============================================================================
// SERVER
// ============================================================================

// ServerConfig contains configuration for the A2A HTTP server
type ServerConfig struct {
	Host    string `yaml:"host"`     // Bind address
	Port    int    `yaml:"port"`     // Listen port
	BaseURL string `yaml:"base_url"` // Public URL advertised in discovery
}

// Validate implements ConfigInterface.Validate for ServerConfig
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	return nil
}

// SetDefaults implements ConfigInterface.SetDefaults for ServerConfig
func (c *ServerConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("http://%s:%d", c.Host, c.Port)
	}
}

// ============================================================================
// CLIENT
// ============================================================================

// ClientConfig contains configuration for the A2A client
type ClientConfig struct {
	ServerURL string `yaml:"server_url"` // Base URL of the server
	Timeout   int    `yaml:"timeout"`    // Request timeout in seconds
	AgentID   string `yaml:"agent_id"`   // Client agent identifier
	AgentName string `yaml:"agent_name"` // Client agent name
}

// Validate implements ConfigInterface.Validate for ClientConfig
func (c *ClientConfig) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("client server_url cannot be empty")
	}
	if _, err := url.Parse(c.ServerURL); err != nil {
		return fmt.Errorf("invalid client server_url: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("client timeout cannot be negative: %d", c.Timeout)
	}
	return nil
}

// SetDefaults implements ConfigInterface.SetDefaults for ClientConfig
func (c *ClientConfig) SetDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8080"
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
	if c.AgentID == "" {
		c.AgentID = "chicken-food-safety-client"
	}
	if c.AgentName == "" {
		c.AgentName = "Chicken Food Safety Client"
	}
}

// TimeoutDuration returns the configured timeout as a time.Duration.
func (c *ClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ============================================================================
// SAFETY
// ============================================================================

// SafetyConfig extends the built-in food classification sets. Names are
// normalized (trimmed, lower-cased) before use, so entries here are
// case-insensitive.
type SafetyConfig struct {
	ExtraSafe   []string `yaml:"extra_safe,omitempty"`   // Additional safe foods
	ExtraUnsafe []string `yaml:"extra_unsafe,omitempty"` // Additional unsafe foods
}

// Validate implements ConfigInterface.Validate for SafetyConfig
func (c *SafetyConfig) Validate() error {
	seen := make(map[string]bool, len(c.ExtraSafe))
	for _, food := range c.ExtraSafe {
		seen[normalizeFood(food)] = true
	}
	for _, food := range c.ExtraUnsafe {
		if seen[normalizeFood(food)] {
			return fmt.Errorf("food %q listed as both extra_safe and extra_unsafe", food)
		}
	}
	return nil
}

// SetDefaults implements ConfigInterface.SetDefaults for SafetyConfig
func (c *SafetyConfig) SetDefaults() {}

// ============================================================================
// LOGGER
// ============================================================================

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	File   string `yaml:"file"`   // Log file path (empty = stderr)
	Format string `yaml:"format"` // simple or verbose
}

// Validate implements ConfigInterface.Validate for LoggerConfig
func (c *LoggerConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
}

// SetDefaults implements ConfigInterface.SetDefaults for LoggerConfig
func (c *LoggerConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "simple"
	}
}

// ============================================================================
// METRICS
// ============================================================================

// MetricsConfig controls the Prometheus /metrics endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate implements ConfigInterface.Validate for MetricsConfig
func (c *MetricsConfig) Validate() error { return nil }

// SetDefaults implements ConfigInterface.SetDefaults for MetricsConfig
func (c *MetricsConfig) SetDefaults() {}
