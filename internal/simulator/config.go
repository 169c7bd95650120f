// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package simulator

import "fmt"

// Scheme identifies the successor-selection scheme.
type Scheme string

const (
	// SchemeUniform picks the successor uniformly over the catalog,
	// excluding the current song.
	SchemeUniform Scheme = "uniform"

	// SchemeWeighted biases the successor toward a hidden per-(user, song)
	// preference structure derived deterministically from the seed.
	SchemeWeighted Scheme = "weighted"
)

// DefaultSeed is the RNG seed used when Config.Seed is zero.
const DefaultSeed int64 = 1109

// Config contains configuration for the activity simulator.
type Config struct {
	// Scheme selects how successors are chosen. Default: weighted.
	Scheme Scheme `json:"scheme" koanf:"scheme"`

	// ActiveUsersMin and ActiveUsersMax bound the active cohort size drawn
	// each step. Defaults: 10 and 25.
	ActiveUsersMin int `json:"active_users_min" koanf:"active_users_min"`
	ActiveUsersMax int `json:"active_users_max" koanf:"active_users_max"`

	// Seed is the RNG seed. Zero selects DefaultSeed.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultConfig returns the default simulator configuration.
func DefaultConfig() Config {
	return Config{
		Scheme:         SchemeWeighted,
		ActiveUsersMin: 10,
		ActiveUsersMax: 25,
		Seed:           0,
	}
}

// Validate checks the configuration against the given user population.
func (c Config) Validate(users int) error {
	switch c.Scheme {
	case SchemeUniform, SchemeWeighted:
	default:
		return fmt.Errorf("unknown scheme %q", c.Scheme)
	}
	if c.ActiveUsersMin < 1 {
		return fmt.Errorf("active_users_min must be >= 1, got %d", c.ActiveUsersMin)
	}
	if c.ActiveUsersMax < c.ActiveUsersMin {
		return fmt.Errorf("active_users_max (%d) must be >= active_users_min (%d)", c.ActiveUsersMax, c.ActiveUsersMin)
	}
	if c.ActiveUsersMax > users {
		return fmt.Errorf("active_users_max (%d) exceeds user population (%d)", c.ActiveUsersMax, users)
	}
	return nil
}
