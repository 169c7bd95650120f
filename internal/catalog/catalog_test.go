// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package catalog

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		songs   int
		users   int
		wantErr bool
	}{
		{name: "default sizes", songs: 100, users: 50},
		{name: "minimum sizes", songs: 2, users: 1},
		{name: "one song", songs: 1, users: 50, wantErr: true},
		{name: "zero songs", songs: 0, users: 50, wantErr: true},
		{name: "negative songs", songs: -3, users: 50, wantErr: true},
		{name: "zero users", songs: 100, users: 0, wantErr: true},
		{name: "negative users", songs: 100, users: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat, err := New(tt.songs, tt.users)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%d, %d) expected error, got nil", tt.songs, tt.users)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d) unexpected error: %v", tt.songs, tt.users, err)
			}
			if cat.Songs() != tt.songs {
				t.Errorf("Songs() = %d, want %d", cat.Songs(), tt.songs)
			}
			if cat.Users() != tt.users {
				t.Errorf("Users() = %d, want %d", cat.Users(), tt.users)
			}
		})
	}
}

func TestCatalog_Membership(t *testing.T) {
	t.Parallel()

	cat, err := New(100, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		id   int
		song bool
		user bool
	}{
		{name: "zero", id: 0, song: true, user: true},
		{name: "last user", id: 49, song: true, user: true},
		{name: "first id past users", id: 50, song: true, user: false},
		{name: "last song", id: 99, song: true, user: false},
		{name: "first id past songs", id: 100, song: false, user: false},
		{name: "negative", id: -1, song: false, user: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cat.ValidSong(tt.id); got != tt.song {
				t.Errorf("ValidSong(%d) = %v, want %v", tt.id, got, tt.song)
			}
			if got := cat.ValidUser(tt.id); got != tt.user {
				t.Errorf("ValidUser(%d) = %v, want %v", tt.id, got, tt.user)
			}
		})
	}
}

func TestCatalog_Check(t *testing.T) {
	t.Parallel()

	cat, err := New(3, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := cat.CheckSong(2); err != nil {
		t.Errorf("CheckSong(2) = %v, want nil", err)
	}
	if err := cat.CheckUser(1); err != nil {
		t.Errorf("CheckUser(1) = %v, want nil", err)
	}

	if err := cat.CheckSong(3); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("CheckSong(3) = %v, want ErrInvalidIdentifier", err)
	}
	if err := cat.CheckSong(-1); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("CheckSong(-1) = %v, want ErrInvalidIdentifier", err)
	}
	if err := cat.CheckUser(2); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("CheckUser(2) = %v, want ErrInvalidIdentifier", err)
	}
}
