// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

// Store holds the snapshot that is currently on screen.
//
// It is owned by the event loop and is not safe for concurrent use.
type Store struct {
	current *Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs snap as the current snapshot, discarding the previous one.
func (s *Store) Replace(snap *Snapshot) {
	s.current = snap
}

// Current returns the last installed snapshot, or nil before the first fetch.
func (s *Store) Current() *Snapshot {
	return s.current
}
