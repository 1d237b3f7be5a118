// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

// =============================================================================
// ACTIVITY
// =============================================================================

// Activity is a single signup-able offering.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int

	// Participants are emails in server order. Duplicates are kept.
	Participants []string
}

// SpotsLeft is capacity minus current participant count. It is negative when
// the server has admitted more participants than MaxParticipants allows.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Count returns the number of participants.
func (a Activity) Count() int {
	return len(a.Participants)
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an ordered mapping from activity name to Activity.
// Iteration order is the key order of the document it was decoded from.
type Snapshot struct {
	order []string
	byKey map[string]Activity
}

// NewSnapshot builds a snapshot from activities in the given order.
// A repeated name replaces the earlier entry but keeps its position.
func NewSnapshot(activities ...Activity) *Snapshot {
	s := &Snapshot{byKey: make(map[string]Activity, len(activities))}
	for _, a := range activities {
		s.put(a)
	}
	return s
}

func (s *Snapshot) put(a Activity) {
	if _, exists := s.byKey[a.Name]; !exists {
		s.order = append(s.order, a.Name)
	}
	s.byKey[a.Name] = a
}

// Len returns the number of activities.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns activity names in iteration order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Activities returns every activity in iteration order.
func (s *Snapshot) Activities() []Activity {
	if s == nil {
		return nil
	}
	out := make([]Activity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byKey[name])
	}
	return out
}

// Get looks up an activity by name.
func (s *Snapshot) Get(name string) (Activity, bool) {
	if s == nil {
		return Activity{}, false
	}
	a, ok := s.byKey[name]
	return a, ok
}
