// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package recommend

import "fmt"

// DefaultSeed is the RNG seed used when SelectorConfig.Seed is zero, keeping
// unseeded runs reproducible.
const DefaultSeed int64 = 42

// SelectorConfig contains configuration for the MFC selector.
type SelectorConfig struct {
	// WindowSize is the number of top-ranked candidates eligible for the
	// weighted draw. Larger windows increase recommendation diversity,
	// a window of 1 degenerates to arg-max.
	// Must be >= 1. Default: 3.
	WindowSize int `json:"window_size" koanf:"window_size"`

	// Seed is the RNG seed for the weighted draw. Zero selects DefaultSeed.
	Seed int64 `json:"seed" koanf:"seed"`
}

// DefaultSelectorConfig returns the default selector configuration.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		WindowSize: 3,
		Seed:       0,
	}
}

// Validate checks the configuration for invalid values.
func (c SelectorConfig) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be >= 1, got %d", c.WindowSize)
	}
	return nil
}
