// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Package service wires the catalog, transition table, selector, and
// simulator into a single orchestrator consumed by the HTTP layer.
// It owns cross-component operations (statistics reset spans both the
// table and the simulator) and records domain metrics.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/segue-fm/segue/internal/catalog"
	"github.com/segue-fm/segue/internal/logging"
	"github.com/segue-fm/segue/internal/metrics"
	"github.com/segue-fm/segue/internal/recommend"
	"github.com/segue-fm/segue/internal/simulator"
)

// Recommendation is the result of a next-track request.
type Recommendation struct {
	Song       int                   `json:"song"`
	Next       int                   `json:"next"`
	Mode       string                `json:"mode"`
	Candidates []recommend.Candidate `json:"candidates,omitempty"`
}

// Recommendation modes reported to callers and metrics.
const (
	ModeFrequency = "frequency"
	ModeColdStart = "cold_start"
)

// SimulationResult summarizes an Advance call.
type SimulationResult struct {
	StepsRun         int   `json:"steps_run"`
	TotalSteps       int64 `json:"total_steps"`
	EventsRecorded   int64 `json:"events_recorded"`
	TotalTransitions int64 `json:"total_transitions"`
	LastCohortSize   int   `json:"last_cohort_size"`
}

// Stats is a point-in-time snapshot of the recommender state.
type Stats struct {
	CatalogSongs     int   `json:"catalog_songs"`
	CatalogUsers     int   `json:"catalog_users"`
	WindowSize       int   `json:"window_size"`
	TotalTransitions int64 `json:"total_transitions"`
	TrackedSources   int   `json:"tracked_sources"`
	SimulatorSteps   int64 `json:"simulator_steps"`
	EventsRecorded   int64 `json:"events_recorded"`
	LastCohortSize   int   `json:"last_cohort_size"`
}

// Service coordinates the recommendation components.
type Service struct {
	cat      *catalog.Catalog
	table    *recommend.TransitionTable
	selector *recommend.Selector
	sim      *simulator.Simulator

	// resetMu serializes ResetStatistics against Advance so a reset never
	// lands between clearing the table and rewinding the simulator.
	resetMu sync.Mutex
}

// New creates a service over already-constructed components. All four are
// required; the components share the same catalog by construction in main.
func New(cat *catalog.Catalog, table *recommend.TransitionTable, sel *recommend.Selector, sim *simulator.Simulator) *Service {
	return &Service{
		cat:      cat,
		table:    table,
		selector: sel,
		sim:      sim,
	}
}

// Recommend returns the next track for songID along with the candidate
// window that produced it. Returns catalog.ErrInvalidIdentifier (wrapped)
// when songID is outside the catalog.
func (s *Service) Recommend(ctx context.Context, songID int) (Recommendation, error) {
	start := time.Now()

	sel, err := s.selector.Next(songID)
	if err != nil {
		return Recommendation{}, err
	}

	mode := ModeFrequency
	if sel.ColdStart {
		mode = ModeColdStart
	}

	metrics.RecommendationsTotal.WithLabelValues(mode).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	logging.Ctx(ctx).Debug().
		Int("song", songID).
		Int("next", sel.Song).
		Str("mode", mode).
		Int("window", len(sel.Window)).
		Msg("Recommendation served")

	return Recommendation{
		Song:       songID,
		Next:       sel.Song,
		Mode:       mode,
		Candidates: sel.Window,
	}, nil
}

// TopCandidates returns up to k most frequent successors of songID.
func (s *Service) TopCandidates(songID, k int) ([]recommend.Candidate, error) {
	return s.selector.TopCandidates(songID, k)
}

// Advance runs n simulation steps and reports the resulting counters.
func (s *Service) Advance(ctx context.Context, n int) (SimulationResult, error) {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	before := s.table.TotalTransitions()
	if err := s.sim.Steps(n); err != nil {
		return SimulationResult{}, err
	}
	after := s.table.TotalTransitions()

	metrics.SimulatorSteps.Add(float64(n))
	metrics.TransitionsRecorded.Add(float64(after - before))

	logging.Ctx(ctx).Info().
		Int("steps", n).
		Int64("events", after-before).
		Int("cohort", s.sim.LastCohortSize()).
		Msg("Simulation advanced")

	return SimulationResult{
		StepsRun:         n,
		TotalSteps:       s.sim.StepsRun(),
		EventsRecorded:   s.sim.EventsRecorded(),
		TotalTransitions: after,
		LastCohortSize:   s.sim.LastCohortSize(),
	}, nil
}

// ResetStatistics clears all transition counts and rewinds the simulator to
// its initial state. Calling it twice in a row leaves the same state as
// calling it once.
func (s *Service) ResetStatistics(ctx context.Context) {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	s.table.Reset()
	s.sim.Reset()

	metrics.StatisticsResets.Inc()
	logging.Ctx(ctx).Info().Msg("Statistics reset")
}

// Stats returns a snapshot of catalog dimensions and accumulated counters.
func (s *Service) Stats() Stats {
	return Stats{
		CatalogSongs:     s.cat.Songs(),
		CatalogUsers:     s.cat.Users(),
		WindowSize:       s.selector.WindowSize(),
		TotalTransitions: s.table.TotalTransitions(),
		TrackedSources:   s.table.TrackedSources(),
		SimulatorSteps:   s.sim.StepsRun(),
		EventsRecorded:   s.sim.EventsRecorded(),
		LastCohortSize:   s.sim.LastCohortSize(),
	}
}
