// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Package config loads and validates application configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or SEGUE_CONFIG_PATH)
//  3. Environment variables with the SEGUE_ prefix
//     (SEGUE_RECOMMENDER_WINDOW_SIZE -> recommender.window_size)
package config

import (
	"fmt"
	"time"

	"github.com/segue-fm/segue/internal/recommend"
	"github.com/segue-fm/segue/internal/simulator"
)

// Config is the root application configuration.
type Config struct {
	Catalog     CatalogConfig            `koanf:"catalog"`
	Recommender recommend.SelectorConfig `koanf:"recommender"`
	Simulator   SimulatorConfig          `koanf:"simulator"`
	Server      ServerConfig             `koanf:"server"`
	Logging     LoggingConfig            `koanf:"logging"`
}

// CatalogConfig sizes the fixed song and user universe.
type CatalogConfig struct {
	// Songs is the number of songs in the catalog. Default: 100.
	Songs int `koanf:"songs"`

	// Users is the number of simulated users. Default: 50.
	Users int `koanf:"users"`
}

// SimulatorConfig extends the simulator's own configuration with service
// level settings.
type SimulatorConfig struct {
	// Scheme selects the successor scheme: uniform or weighted.
	Scheme string `koanf:"scheme"`

	// ActiveUsersMin and ActiveUsersMax bound the per-step active cohort.
	ActiveUsersMin int `koanf:"active_users_min"`
	ActiveUsersMax int `koanf:"active_users_max"`

	// Seed seeds the simulator RNG. Zero selects the fixed default seed.
	Seed int64 `koanf:"seed"`

	// SeedSteps is the number of simulation steps run at startup to give
	// the recommender initial statistics. Zero disables seeding.
	SeedSteps int `koanf:"seed_steps"`

	// TickInterval is the cadence of the background simulation service.
	// Zero disables the background ticker; simulation is then driven only
	// by the /simulate endpoint.
	TickInterval time.Duration `koanf:"tick_interval"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout bounds request reads and writes and graceful shutdown.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SimulatorConfig converts the simulator section to the simulator package's
// own configuration type.
func (c *Config) SimulatorConfig() simulator.Config {
	return simulator.Config{
		Scheme:         simulator.Scheme(c.Simulator.Scheme),
		ActiveUsersMin: c.Simulator.ActiveUsersMin,
		ActiveUsersMax: c.Simulator.ActiveUsersMax,
		Seed:           c.Simulator.Seed,
	}
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the full configuration, aggregating per-section checks.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateCatalog,
		c.validateRecommender,
		c.validateSimulator,
		c.validateServer,
		c.validateLogging,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Songs < 2 {
		return fmt.Errorf("catalog.songs must be >= 2, got %d", c.Catalog.Songs)
	}
	if c.Catalog.Users < 1 {
		return fmt.Errorf("catalog.users must be >= 1, got %d", c.Catalog.Users)
	}
	return nil
}

func (c *Config) validateRecommender() error {
	if err := c.Recommender.Validate(); err != nil {
		return fmt.Errorf("recommender: %w", err)
	}
	return nil
}

func (c *Config) validateSimulator() error {
	if err := c.SimulatorConfig().Validate(c.Catalog.Users); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	if c.Simulator.SeedSteps < 0 {
		return fmt.Errorf("simulator.seed_steps must be >= 0, got %d", c.Simulator.SeedSteps)
	}
	if c.Simulator.TickInterval < 0 {
		return fmt.Errorf("simulator.tick_interval must be >= 0, got %s", c.Simulator.TickInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be > 0, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_reqs must be >= 1, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be > 0, got %s", c.Server.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
