// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package recommend

// Candidate is a recorded successor of a source song together with the number
// of times the transition was observed.
type Candidate struct {
	// Song is the successor song identifier.
	Song int `json:"song"`

	// Count is the cumulative number of observed transitions into Song.
	// Always >= 1 for a recorded candidate.
	Count int `json:"count"`
}

// Selection describes the outcome of a single recommendation draw.
type Selection struct {
	// Song is the recommended next song.
	Song int `json:"song"`

	// ColdStart is true when the source song had no recorded successors and
	// the pick fell back to a uniform draw over the rest of the catalog.
	ColdStart bool `json:"cold_start"`

	// Window is the top-K candidate set the weighted draw was made from,
	// ordered by count descending with ties broken by ascending song id.
	// Nil on cold start.
	Window []Candidate `json:"window,omitempty"`
}
