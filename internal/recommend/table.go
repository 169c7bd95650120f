// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package recommend

import (
	"sort"
	"sync"

	"github.com/segue-fm/segue/internal/catalog"
)

// TransitionTable accumulates counts of observed song-to-song transitions.
//
// The table is append/increment-only during normal operation; Reset exists
// for test isolation and the explicit reset-statistics operation. Counts are
// monotonically non-decreasing between resets.
//
// Increments are serialized behind a write lock and candidate reads run under
// a shared read lock, so a reader never observes a partially applied
// increment and Candidates reflects every increment that completed before
// the call.
type TransitionTable struct {
	cat *catalog.Catalog

	mu sync.RWMutex

	// counts[source][target] = number of observed source -> target plays
	counts map[int]map[int]int

	total int64
}

// NewTransitionTable creates an empty transition table over the given catalog.
func NewTransitionTable(cat *catalog.Catalog) *TransitionTable {
	return &TransitionTable{
		cat:    cat,
		counts: make(map[int]map[int]int),
	}
}

// Increment records one observed transition from source to target, creating
// the entry if absent. Both identifiers must be valid per the catalog;
// otherwise catalog.ErrInvalidIdentifier is returned and nothing is recorded.
// Self-transitions are permitted and counted like any other pair.
func (t *TransitionTable) Increment(source, target int) error {
	if err := t.cat.CheckSong(source); err != nil {
		return err
	}
	if err := t.cat.CheckSong(target); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	row := t.counts[source]
	if row == nil {
		row = make(map[int]int)
		t.counts[source] = row
	}
	row[target]++
	t.total++

	return nil
}

// Candidates returns the recorded successors of source ordered by count
// descending, ties broken by ascending song id. The ordering is deterministic
// for a fixed table state. A source with no recorded transitions yields an
// empty slice, not an error. The returned slice is a copy and safe to retain.
func (t *TransitionTable) Candidates(source int) ([]Candidate, error) {
	if err := t.cat.CheckSong(source); err != nil {
		return nil, err
	}

	t.mu.RLock()
	row := t.counts[source]
	cands := make([]Candidate, 0, len(row))
	for target, count := range row {
		cands = append(cands, Candidate{Song: target, Count: count})
	}
	t.mu.RUnlock()

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Count != cands[j].Count {
			return cands[i].Count > cands[j].Count
		}
		return cands[i].Song < cands[j].Song
	})

	return cands, nil
}

// Count returns the recorded count for a single (source, target) pair, zero
// if the pair was never observed.
func (t *TransitionTable) Count(source, target int) (int, error) {
	if err := t.cat.CheckSong(source); err != nil {
		return 0, err
	}
	if err := t.cat.CheckSong(target); err != nil {
		return 0, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[source][target], nil
}

// Reset clears all recorded counts.
func (t *TransitionTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts = make(map[int]map[int]int)
	t.total = 0
}

// TotalTransitions returns the total number of increments applied since the
// last reset.
func (t *TransitionTable) TotalTransitions() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// TrackedSources returns the number of songs with at least one recorded
// successor.
func (t *TransitionTable) TrackedSources() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.counts)
}

// Catalog returns the catalog the table validates identifiers against.
func (t *TransitionTable) Catalog() *catalog.Catalog {
	return t.cat
}
