// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Package recommend implements the Most Frequent Choice (MFC) next-track
// recommendation policy.
//
// # Architecture
//
// Two pieces cooperate:
//
//   - TransitionTable: the global song-to-song transition-frequency table.
//     It accumulates play counts of observed (song, next song) pairs and is
//     the only mutable state of the recommender.
//   - Selector: the selection policy. Given a current song it ranks the
//     recorded successors by count, keeps the top-K window, and draws one
//     successor with probability proportional to its count.
//
// # Design Principles
//
//   - Deterministic ranking: candidates are ordered by count descending with
//     ties broken by ascending song id, so the top-K window is identical
//     across repeated calls on an unchanged table.
//   - Seeded randomness: the weighted draw uses a seeded RNG so runs are
//     reproducible.
//   - Read-only selection: Selector never mutates the table. Repeated calls
//     only change through intervening Increment calls.
//   - Cold start is not an error: a song with no recorded successors falls
//     back to a uniform pick over the catalog excluding the song itself.
//
// # Thread Safety
//
// TransitionTable serializes increments behind a write lock and serves
// candidate reads behind a read lock; an increment is visible in full or not
// at all. Selector is safe for concurrent use.
//
// # Usage
//
//	cat, _ := catalog.New(100, 50)
//	table := recommend.NewTransitionTable(cat)
//	sel, _ := recommend.NewSelector(cat, table, recommend.DefaultSelectorConfig())
//
//	_ = table.Increment(4, 17)
//	pick, _ := sel.Next(4)
package recommend
