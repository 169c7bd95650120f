// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Catalog.Songs != 100 {
		t.Errorf("catalog.songs = %d, want 100", cfg.Catalog.Songs)
	}
	if cfg.Catalog.Users != 50 {
		t.Errorf("catalog.users = %d, want 50", cfg.Catalog.Users)
	}
	if cfg.Recommender.WindowSize != 3 {
		t.Errorf("recommender.window_size = %d, want 3", cfg.Recommender.WindowSize)
	}
	if cfg.Simulator.Scheme != "weighted" {
		t.Errorf("simulator.scheme = %q, want weighted", cfg.Simulator.Scheme)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("SEGUE_SERVER_PORT", "9001")
	t.Setenv("SEGUE_RECOMMENDER_WINDOW_SIZE", "5")
	t.Setenv("SEGUE_SIMULATOR_SCHEME", "uniform")
	t.Setenv("SEGUE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("server.port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Recommender.WindowSize != 5 {
		t.Errorf("recommender.window_size = %d, want 5", cfg.Recommender.WindowSize)
	}
	if cfg.Simulator.Scheme != "uniform" {
		t.Errorf("simulator.scheme = %q, want uniform", cfg.Simulator.Scheme)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"catalog:",
		"  songs: 10",
		"  users: 4",
		"simulator:",
		"  scheme: uniform",
		"  active_users_min: 1",
		"  active_users_max: 4",
		"server:",
		"  port: 7777",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Catalog.Songs != 10 {
		t.Errorf("catalog.songs = %d, want 10", cfg.Catalog.Songs)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server.port = %d, want 7777", cfg.Server.Port)
	}
	// Untouched sections keep defaults.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("server.timeout = %s, want 30s", cfg.Server.Timeout)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("SEGUE_RECOMMENDER_WINDOW_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted window_size=0, want validation error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "one song", mutate: func(c *Config) { c.Catalog.Songs = 1 }},
		{name: "zero users", mutate: func(c *Config) { c.Catalog.Users = 0 }},
		{name: "zero window", mutate: func(c *Config) { c.Recommender.WindowSize = 0 }},
		{name: "unknown scheme", mutate: func(c *Config) { c.Simulator.Scheme = "zipf" }},
		{name: "cohort above population", mutate: func(c *Config) { c.Simulator.ActiveUsersMax = 51 }},
		{name: "negative seed steps", mutate: func(c *Config) { c.Simulator.SeedSteps = -1 }},
		{name: "negative tick interval", mutate: func(c *Config) { c.Simulator.TickInterval = -time.Second }},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "zero timeout", mutate: func(c *Config) { c.Server.Timeout = 0 }},
		{name: "zero rate limit", mutate: func(c *Config) { c.Server.RateLimitReqs = 0 }},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"SEGUE_SERVER_PORT", "server.port"},
		{"SEGUE_RECOMMENDER_WINDOW_SIZE", "recommender.window_size"},
		{"SEGUE_SIMULATOR_ACTIVE_USERS_MIN", "simulator.active_users_min"},
		{"SEGUE_CATALOG_SONGS", "catalog.songs"},
		{"SEGUE_UNKNOWN_THING", ""},
		{"SEGUE_SERVER", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestServerConfigAddr(t *testing.T) {
	t.Parallel()

	sc := ServerConfig{Host: "127.0.0.1", Port: 8096}
	if got := sc.Addr(); got != "127.0.0.1:8096" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8096")
	}
}
