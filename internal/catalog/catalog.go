// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier indicates a song or user identifier outside the
// catalog range. This is a caller bug and is surfaced immediately; identifiers
// are never clamped into range.
var ErrInvalidIdentifier = errors.New("identifier outside catalog range")

// Catalog is the fixed universe of valid song and user identifiers.
// Songs are 0..Songs()-1 and users are 0..Users()-1. A Catalog is immutable
// after construction and safe for concurrent use.
type Catalog struct {
	songs int
	users int
}

// New creates a catalog with the given number of songs and users.
// At least two songs are required so that a cold-start recommendation can
// always exclude the current song. At least one user is required.
func New(songs, users int) (*Catalog, error) {
	if songs < 2 {
		return nil, fmt.Errorf("catalog requires at least 2 songs, got %d", songs)
	}
	if users < 1 {
		return nil, fmt.Errorf("catalog requires at least 1 user, got %d", users)
	}
	return &Catalog{songs: songs, users: users}, nil
}

// Songs returns the fixed number of songs in the catalog.
func (c *Catalog) Songs() int {
	return c.songs
}

// Users returns the fixed number of users in the catalog.
func (c *Catalog) Users() int {
	return c.users
}

// ValidSong reports whether id is a valid song identifier.
func (c *Catalog) ValidSong(id int) bool {
	return id >= 0 && id < c.songs
}

// ValidUser reports whether id is a valid user identifier.
func (c *Catalog) ValidUser(id int) bool {
	return id >= 0 && id < c.users
}

// CheckSong returns ErrInvalidIdentifier (wrapped with the offending id) if
// id is not a valid song identifier.
func (c *Catalog) CheckSong(id int) error {
	if !c.ValidSong(id) {
		return fmt.Errorf("%w: song %d (catalog has %d songs)", ErrInvalidIdentifier, id, c.songs)
	}
	return nil
}

// CheckUser returns ErrInvalidIdentifier (wrapped with the offending id) if
// id is not a valid user identifier.
func (c *Catalog) CheckUser(id int) error {
	if !c.ValidUser(id) {
		return fmt.Errorf("%w: user %d (catalog has %d users)", ErrInvalidIdentifier, id, c.users)
	}
	return nil
}
