// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/segue-fm/segue/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/segue/config.yaml",
	"/etc/segue/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "SEGUE_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// config paths.
const envPrefix = "SEGUE_"

// configSections are the valid top-level sections an environment variable
// can address.
var configSections = map[string]bool{
	"catalog":     true,
	"recommender": true,
	"simulator":   true,
	"server":      true,
	"logging":     true,
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Songs: 100,
			Users: 50,
		},
		Recommender: recommend.DefaultSelectorConfig(),
		Simulator: SimulatorConfig{
			Scheme:         "weighted",
			ActiveUsersMin: 10,
			ActiveUsersMax: 25,
			Seed:           0,
			SeedSteps:      200,
			TickInterval:   0, // background ticker disabled by default
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8096,
			Timeout:         30 * time.Second,
			RateLimitReqs:   300,
			RateLimitWindow: 1 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// SEGUE_SIMULATOR_ACTIVE_USERS_MIN -> simulator.active_users_min
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file, honoring the path override.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps a SEGUE_-prefixed environment variable to a koanf
// config path. The first underscore separates the section from the key:
//
//	SEGUE_SERVER_PORT             -> server.port
//	SEGUE_RECOMMENDER_WINDOW_SIZE -> recommender.window_size
//
// Variables that do not address a known section are ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, ok := strings.Cut(key, "_")
	if !ok || !configSections[section] {
		return ""
	}
	return section + "." + rest
}
