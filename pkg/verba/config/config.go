// Package config holds the application configuration shared by the verba
// binaries. Values come from a YAML file layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Rank   RankConfig   `yaml:"rank"`
	Server ServerConfig `yaml:"server"`
}

// StoreConfig locates the SQLite database file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig bounds the document fetcher.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MaxBodyBytes   int64  `yaml:"max_body_bytes"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// RankConfig sizes the ranking kept per document.
type RankConfig struct {
	TopWords int `yaml:"top_words"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr                 string `yaml:"addr"`
	ShutdownGraceSeconds int    `yaml:"shutdown_grace_seconds"`
}

// ShutdownGrace returns the graceful-stop window as a duration.
func (s ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(s.ShutdownGraceSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{Path: "verba.db"},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			UserAgent:      "verba/0.1",
			MaxBodyBytes:   10 << 20,
		},
		Rank:   RankConfig{TopWords: 10},
		Server: ServerConfig{Addr: ":8080", ShutdownGraceSeconds: 5},
	}
}

// Load reads a config file layered over the defaults. An empty path returns
// the defaults untouched; keys absent from the file keep their default
// value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("config: store.path must not be empty")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	}
	if c.Rank.TopWords <= 0 {
		return fmt.Errorf("config: rank.top_words must be positive, got %d", c.Rank.TopWords)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.Server.ShutdownGraceSeconds < 0 {
		return fmt.Errorf("config: server.shutdown_grace_seconds must not be negative, got %d", c.Server.ShutdownGraceSeconds)
	}
	return nil
}
