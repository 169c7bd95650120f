// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package recommend

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/segue-fm/segue/internal/catalog"
)

// Selector implements the Most Frequent Choice selection policy.
//
// Given a current song it fetches the recorded successors from the transition
// table, keeps the top-K window by count (ties broken by ascending song id),
// and draws one candidate with probability proportional to its count. The
// draw is biased toward the historically most frequent successor without
// being rigidly equal to it: any candidate in the window can be returned.
//
// A song with no recorded successors falls back to a uniform pick over the
// catalog excluding the song itself. Selection never mutates the table.
type Selector struct {
	cat    *catalog.Catalog
	table  *TransitionTable
	config SelectorConfig

	// rng is protected by rngMu for concurrent selection.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSelector creates a selector over the given catalog and table.
func NewSelector(cat *catalog.Catalog, table *TransitionTable, cfg SelectorConfig) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selector config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	return &Selector{
		cat:    cat,
		table:  table,
		config: cfg,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
	}, nil
}

// WindowSize returns the configured top-K window size.
func (s *Selector) WindowSize() int {
	return s.config.WindowSize
}

// Next returns a recommended next song for current.
// Returns catalog.ErrInvalidIdentifier if current is not in the catalog.
func (s *Selector) Next(current int) (Selection, error) {
	cands, err := s.table.Candidates(current)
	if err != nil {
		return Selection{}, err
	}

	if len(cands) == 0 {
		return Selection{Song: s.coldStart(current), ColdStart: true}, nil
	}

	window := cands
	if len(window) > s.config.WindowSize {
		window = window[:s.config.WindowSize]
	}

	return Selection{Song: s.drawWeighted(window), Window: window}, nil
}

// TopCandidates returns up to k recorded successors of current in the
// deterministic ranking order. k <= 0 selects the configured window size.
func (s *Selector) TopCandidates(current, k int) ([]Candidate, error) {
	cands, err := s.table.Candidates(current)
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		k = s.config.WindowSize
	}
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands, nil
}

// coldStart picks uniformly over the catalog excluding current.
func (s *Selector) coldStart(current int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	pick := s.rng.Intn(s.cat.Songs() - 1)
	if pick >= current {
		pick++
	}
	return pick
}

// drawWeighted draws one candidate with probability proportional to its
// count. Counts are >= 1 for any recorded candidate; a zero total falls back
// to a uniform draw over the window.
func (s *Selector) drawWeighted(window []Candidate) int {
	var total int64
	for _, c := range window {
		if c.Count > 0 {
			total += int64(c.Count)
		}
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	if total <= 0 {
		return window[s.rng.Intn(len(window))].Song
	}

	draw := s.rng.Int63n(total)
	for _, c := range window {
		if c.Count <= 0 {
			continue
		}
		draw -= int64(c.Count)
		if draw < 0 {
			return c.Song
		}
	}

	// Unreachable: the walk above always terminates inside the window.
	return window[len(window)-1].Song
}
