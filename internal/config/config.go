// Package config loads alertdeck configuration from a TOML file with
// ALERTDECK_ environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Logging  LoggingConfig  `koanf:"logging"`
	Engine   EngineConfig   `koanf:"engine"`
	Delivery DeliveryConfig `koanf:"delivery"`
	Identity IdentityConfig `koanf:"identity"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
}

// SQLiteConfig holds the durable store settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// EngineConfig holds engine-level settings. Timezone fixes the calendar-day
// boundary used by snoozing; UTC unless deployments say otherwise.
type EngineConfig struct {
	Timezone string `koanf:"timezone"`
}

// DeliveryConfig selects which channel strategies are registered at boot.
type DeliveryConfig struct {
	Channels []string `koanf:"channels"`
}

// IdentityConfig seeds the user and team directories on boot. In production
// these are owned by the identity provider; the seed stands in for it.
type IdentityConfig struct {
	Teams []IdentityTeam `koanf:"teams"`
	Users []IdentityUser `koanf:"users"`
}

type IdentityTeam struct {
	ID   string `koanf:"id"`
	Name string `koanf:"name"`
}

type IdentityUser struct {
	ID     string `koanf:"id"`
	Name   string `koanf:"name"`
	TeamID string `koanf:"team_id"`
	Role   string `koanf:"role"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			ReadTimeout: 30 * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: "alertdeck.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Engine: EngineConfig{
			Timezone: "UTC",
		},
		Delivery: DeliveryConfig{
			Channels: []string{"inapp", "email", "sms"},
		},
	}
}

// Load reads configuration from the given TOML file (if it exists) and then
// applies ALERTDECK_ environment overrides, e.g. ALERTDECK_SERVER_PORT.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("ALERTDECK_", ".", func(s string) string {
		// ALERTDECK_SERVER_PORT -> server.port
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "ALERTDECK_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Location resolves the engine timezone, falling back to UTC on bad input.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
