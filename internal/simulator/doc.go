// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

// Package simulator generates synthetic listening transitions to populate the
// transition table, standing in for real user telemetry.
//
// Each Step draws an active cohort of distinct users and records one
// transition per cohort member from that user's current song to a chosen
// successor, then advances the user to the successor. The successor scheme is
// configurable:
//
//   - uniform: a uniform pick over the catalog excluding the current song
//   - weighted: a draw biased by a hidden preference structure, a pure
//     deterministic function of (user, song, seed), so simulated frequencies
//     are visibly non-uniform and runs are reproducible
//
// The simulator never emits self-transitions: the successor is always a
// different song than the source. Users are picked uniformly without
// replacement; the cohort size is itself uniform within configured bounds.
//
// Reset restores the per-user listening state and reseeds the RNG, so a reset
// simulator replays the exact same event stream.
package simulator
