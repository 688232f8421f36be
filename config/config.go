// Package config provides configuration loading and management for patternbook.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete patternbook configuration
type Config struct {
	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	NATS    NATSConfig    `yaml:"nats"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

// ContentConfig configures the catalog content source
type ContentConfig struct {
	// Dir is the directory holding entry markdown files (empty = builtin catalog)
	Dir string `yaml:"dir"`
	// Globs are the patterns used to discover entry files
	Globs []string `yaml:"globs"`
	// Watch enables reloading the catalog when content files change
	Watch bool `yaml:"watch"`
	// DebounceDelay batches rapid file changes into one reload
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	// Addr is the listen address for the HTTP server
	Addr string `yaml:"addr"`
}

// NATSConfig configures the knowledge graph connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject is the subject entries are published to
	Subject string `yaml:"subject"`
}

// IngestConfig configures web ingestion
type IngestConfig struct {
	// Timeout is the maximum time to wait for a page fetch
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent identifies patternbook to remote servers
	UserAgent string `yaml:"user_agent"`
	// MaxContentSize caps fetched page size in bytes
	MaxContentSize int64 `yaml:"max_content_size"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Dir:           "", // Builtin catalog
			Globs:         []string{"**/*.md", "**/*.markdown"},
			Watch:         false,
			DebounceDelay: 500 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8470",
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "catalog.ingest.entity",
		},
		Ingest: IngestConfig{
			Timeout:        30 * time.Second,
			UserAgent:      "patternbook/1.0",
			MaxContentSize: 5 << 20,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if len(c.Content.Globs) == 0 {
		return fmt.Errorf("content.globs must not be empty")
	}
	if c.Ingest.Timeout <= 0 {
		return fmt.Errorf("ingest.timeout must be positive")
	}
	if c.Ingest.MaxContentSize <= 0 {
		return fmt.Errorf("ingest.max_content_size must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Content
	if other.Content.Dir != "" {
		c.Content.Dir = other.Content.Dir
	}
	if len(other.Content.Globs) > 0 {
		c.Content.Globs = other.Content.Globs
	}
	if other.Content.Watch {
		c.Content.Watch = true
	}
	if other.Content.DebounceDelay != 0 {
		c.Content.DebounceDelay = other.Content.DebounceDelay
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Ingest
	if other.Ingest.Timeout != 0 {
		c.Ingest.Timeout = other.Ingest.Timeout
	}
	if other.Ingest.UserAgent != "" {
		c.Ingest.UserAgent = other.Ingest.UserAgent
	}
	if other.Ingest.MaxContentSize != 0 {
		c.Ingest.MaxContentSize = other.Ingest.MaxContentSize
	}
}
