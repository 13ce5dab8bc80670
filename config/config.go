// Package config loads PayPulse settings from a YAML file and PAYPULSE_*
// environment variables, in that order of increasing priority.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/logging"
)

// EnvPrefix is the prefix of environment overrides.
// PAYPULSE_STORE_URL maps to store.url.
const EnvPrefix = "PAYPULSE_"

// Store drivers
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the full application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Challenge ChallengeConfig `koanf:"challenge"`
	Store     StoreConfig     `koanf:"store"`
	Events    EventsConfig    `koanf:"events"`
	Log       logging.Config  `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Address string `koanf:"address"`
}

// ChallengeConfig configures issued challenges
type ChallengeConfig struct {
	Length int `koanf:"length"`
}

// StoreConfig selects where valid tokens are kept
type StoreConfig struct {
	Driver string `koanf:"driver"`
	URL    string `koanf:"url"`
}

// EventsConfig configures login audit events
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Topic   string `koanf:"topic"`
}

// ClientConfig configures the scanner
type ClientConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"`
	Retries  int           `koanf:"retries"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server:    ServerConfig{Address: "127.0.0.1:8000"},
		Challenge: ChallengeConfig{Length: core.DefaultChallengeLength},
		Store:     StoreConfig{Driver: StoreMemory, URL: "redis://localhost:6379/0"},
		Events:    EventsConfig{Enabled: false, Topic: "paypulse.login"},
		Log:       logging.Config{Level: "info", Format: "text"},
		Client: ClientConfig{
			Endpoint: "http://127.0.0.1:8000",
			Timeout:  10 * time.Second,
			Retries:  0,
		},
	}
}

// Load reads path (optional) and the environment on top of Default
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load file %s: %w", path, err)
		}
	}

	transform := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Challenge.Length <= 0 {
		return fmt.Errorf("challenge.length must be positive, got %d", c.Challenge.Length)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if c.Store.URL == "" {
			return fmt.Errorf("store.url is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if c.Client.Retries < 0 {
		return fmt.Errorf("client.retries must not be negative, got %d", c.Client.Retries)
	}

	return nil
}
