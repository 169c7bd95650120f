// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package recommend

import (
	"errors"
	"sync"
	"testing"

	"github.com/segue-fm/segue/internal/catalog"
)

func newTestTable(t *testing.T, songs, users int) *TransitionTable {
	t.Helper()

	cat, err := catalog.New(songs, users)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return NewTransitionTable(cat)
}

func TestTransitionTable_Increment(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	for i := 0; i < 7; i++ {
		if err := table.Increment(0, 1); err != nil {
			t.Fatalf("Increment(0, 1) iteration %d: %v", i, err)
		}
	}

	// Increments on unrelated pairs must not affect the (0, 1) count.
	if err := table.Increment(0, 2); err != nil {
		t.Fatalf("Increment(0, 2): %v", err)
	}
	if err := table.Increment(3, 1); err != nil {
		t.Fatalf("Increment(3, 1): %v", err)
	}

	count, err := table.Count(0, 1)
	if err != nil {
		t.Fatalf("Count(0, 1): %v", err)
	}
	if count != 7 {
		t.Errorf("Count(0, 1) = %d, want 7", count)
	}

	if got := table.TotalTransitions(); got != 9 {
		t.Errorf("TotalTransitions() = %d, want 9", got)
	}
	if got := table.TrackedSources(); got != 2 {
		t.Errorf("TrackedSources() = %d, want 2", got)
	}
}

func TestTransitionTable_IncrementInvalidIdentifier(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	tests := []struct {
		name   string
		source int
		target int
	}{
		{name: "source too large", source: 10, target: 0},
		{name: "target too large", source: 0, target: 10},
		{name: "negative source", source: -1, target: 0},
		{name: "negative target", source: 0, target: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := table.Increment(tt.source, tt.target); !errors.Is(err, catalog.ErrInvalidIdentifier) {
				t.Errorf("Increment(%d, %d) = %v, want ErrInvalidIdentifier", tt.source, tt.target, err)
			}
		})
	}

	if got := table.TotalTransitions(); got != 0 {
		t.Errorf("TotalTransitions() = %d after rejected increments, want 0", got)
	}
}

func TestTransitionTable_SelfTransition(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 5, 2)

	if err := table.Increment(2, 2); err != nil {
		t.Fatalf("Increment(2, 2): %v", err)
	}

	count, err := table.Count(2, 2)
	if err != nil {
		t.Fatalf("Count(2, 2): %v", err)
	}
	if count != 1 {
		t.Errorf("Count(2, 2) = %d, want 1", count)
	}
}

func TestTransitionTable_CandidatesOrdering(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	// Counts: 7 -> {3: 2, 1: 5, 8: 2, 4: 1}
	pairs := []struct{ target, times int }{
		{3, 2}, {1, 5}, {8, 2}, {4, 1},
	}
	for _, p := range pairs {
		for i := 0; i < p.times; i++ {
			if err := table.Increment(7, p.target); err != nil {
				t.Fatalf("Increment(7, %d): %v", p.target, err)
			}
		}
	}

	want := []Candidate{
		{Song: 1, Count: 5},
		{Song: 3, Count: 2}, // ties broken by ascending song id
		{Song: 8, Count: 2},
		{Song: 4, Count: 1},
	}

	// The ranking must be identical across repeated calls.
	for i := 0; i < 5; i++ {
		got, err := table.Candidates(7)
		if err != nil {
			t.Fatalf("Candidates(7): %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Candidates(7) returned %d entries, want %d", len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("call %d: Candidates(7)[%d] = %+v, want %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestTransitionTable_CandidatesEmpty(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	got, err := table.Candidates(4)
	if err != nil {
		t.Fatalf("Candidates(4): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Candidates(4) = %v, want empty", got)
	}

	if _, err := table.Candidates(10); !errors.Is(err, catalog.ErrInvalidIdentifier) {
		t.Errorf("Candidates(10) = %v, want ErrInvalidIdentifier", err)
	}
}

func TestTransitionTable_Reset(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	for s := 0; s < 10; s++ {
		if err := table.Increment(s, (s+1)%10); err != nil {
			t.Fatalf("Increment(%d, %d): %v", s, (s+1)%10, err)
		}
	}

	table.Reset()

	if got := table.TotalTransitions(); got != 0 {
		t.Errorf("TotalTransitions() after reset = %d, want 0", got)
	}
	if got := table.TrackedSources(); got != 0 {
		t.Errorf("TrackedSources() after reset = %d, want 0", got)
	}
	for s := 0; s < 10; s++ {
		cands, err := table.Candidates(s)
		if err != nil {
			t.Fatalf("Candidates(%d): %v", s, err)
		}
		if len(cands) != 0 {
			t.Errorf("Candidates(%d) after reset = %v, want empty", s, cands)
		}
	}

	// The table accumulates normally again after a reset.
	if err := table.Increment(1, 2); err != nil {
		t.Fatalf("Increment(1, 2) after reset: %v", err)
	}
	count, err := table.Count(1, 2)
	if err != nil {
		t.Fatalf("Count(1, 2): %v", err)
	}
	if count != 1 {
		t.Errorf("Count(1, 2) after reset = %d, want 1", count)
	}
}

func TestTransitionTable_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, 10, 5)

	const (
		writers       = 8
		perWriter     = 250
		totalExpected = writers * perWriter
	)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := table.Increment(0, 1); err != nil {
					t.Errorf("Increment(0, 1): %v", err)
					return
				}
				// Concurrent readers must never observe a partial increment.
				if _, err := table.Candidates(0); err != nil {
					t.Errorf("Candidates(0): %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	count, err := table.Count(0, 1)
	if err != nil {
		t.Fatalf("Count(0, 1): %v", err)
	}
	if count != totalExpected {
		t.Errorf("Count(0, 1) = %d, want %d", count, totalExpected)
	}
}
