// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package simulator

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/segue-fm/segue/internal/catalog"
	"github.com/segue-fm/segue/internal/recommend"
)

// Simulator generates an effectively infinite stream of listening
// transitions. The caller decides how many steps to run; each step is folded
// into the transition table immediately and events are not retained.
//
// Simulator is safe for concurrent use; steps are serialized.
type Simulator struct {
	cat    *catalog.Catalog
	table  *recommend.TransitionTable
	config Config
	seed   int64

	mu sync.Mutex

	rng *rand.Rand

	// current[u] is user u's current song.
	current []int

	steps      int64
	events     int64
	lastCohort int
}

// New creates a simulator writing into the given table. The table must be
// built over the same catalog.
func New(cat *catalog.Catalog, table *recommend.TransitionTable, cfg Config) (*Simulator, error) {
	if err := cfg.Validate(cat.Users()); err != nil {
		return nil, fmt.Errorf("invalid simulator config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	s := &Simulator{
		cat:    cat,
		table:  table,
		config: cfg,
		seed:   seed,
	}
	s.rewind()
	return s, nil
}

// rewind restores the initial deterministic state: a fresh RNG from the seed
// and every user placed on a starting song drawn from it.
// Must be called with mu held (or before the simulator is shared).
func (s *Simulator) rewind() {
	s.rng = rand.New(rand.NewSource(s.seed)) //nolint:gosec // math/rand is fine for simulation
	s.current = make([]int, s.cat.Users())
	for u := range s.current {
		s.current[u] = s.rng.Intn(s.cat.Songs())
	}
	s.steps = 0
	s.events = 0
	s.lastCohort = 0
}

// Step runs one simulation tick: it draws an active cohort of users and
// records one transition per cohort member.
func (s *Simulator) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

// Steps runs n consecutive ticks. n < 1 is rejected.
func (s *Simulator) Steps(n int) error {
	if n < 1 {
		return fmt.Errorf("step count must be >= 1, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := s.stepLocked(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) stepLocked() error {
	span := s.config.ActiveUsersMax - s.config.ActiveUsersMin + 1
	cohort := s.config.ActiveUsersMin + s.rng.Intn(span)

	// Uniform sample of distinct users.
	active := s.rng.Perm(s.cat.Users())[:cohort]

	for _, u := range active {
		source := s.current[u]
		target := s.nextSong(u, source)
		if err := s.table.Increment(source, target); err != nil {
			return fmt.Errorf("record transition %d -> %d: %w", source, target, err)
		}
		s.current[u] = target
		s.events++
	}

	s.steps++
	s.lastCohort = cohort
	return nil
}

// nextSong picks the successor for a user currently on source. The successor
// is never source itself.
func (s *Simulator) nextSong(user, source int) int {
	if s.config.Scheme == SchemeUniform {
		pick := s.rng.Intn(s.cat.Songs() - 1)
		if pick >= source {
			pick++
		}
		return pick
	}

	// Weighted scheme: draw proportionally to the hidden preference weights.
	var total int64
	for target := 0; target < s.cat.Songs(); target++ {
		if target == source {
			continue
		}
		total += biasWeight(s.seed, user, source, target)
	}

	draw := s.rng.Int63n(total)
	for target := 0; target < s.cat.Songs(); target++ {
		if target == source {
			continue
		}
		draw -= biasWeight(s.seed, user, source, target)
		if draw < 0 {
			return target
		}
	}

	// Unreachable: weights are >= 1 so the walk terminates in range.
	return (source + 1) % s.cat.Songs()
}

// Reset restores the simulator to its initial state so the same event stream
// replays. The transition table is not touched; the orchestrator coordinates
// table and simulator resets.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewind()
}

// StepsRun returns the number of ticks run since the last reset.
func (s *Simulator) StepsRun() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// EventsRecorded returns the number of transitions recorded since the last
// reset.
func (s *Simulator) EventsRecorded() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// LastCohortSize returns the active cohort size of the most recent tick,
// zero before the first tick.
func (s *Simulator) LastCohortSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCohort
}

// biasWeight is the hidden preference structure of the weighted scheme: a
// pure function of (seed, user, source, target) producing an integer weight
// >= 1. A small fraction of successors per (user, source) receive a heavy
// weight, which makes the accumulated frequencies visibly non-uniform.
func biasWeight(seed int64, user, source, target int) int64 {
	x := uint64(seed)
	x ^= uint64(user) << 42
	x ^= uint64(source) << 21
	x ^= uint64(target)
	x = splitmix64(x)

	switch {
	case x%97 < 2:
		return 32
	case x%97 < 10:
		return 8
	default:
		return 1
	}
}

// splitmix64 is the finalizer of the SplitMix64 generator, used here as a
// cheap avalanche hash.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
