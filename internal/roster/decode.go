// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidRoster is returned when a roster body cannot be interpreted.
var ErrInvalidRoster = errors.New("invalid roster document")

// Decode parses a GET /activities body:
//
//	{"Chess Club": {"description": "...", "schedule": "...",
//	                "max_participants": 12, "participants": ["a@x.com"]}}
//
// Object key order is preserved. Missing optional fields take their zero
// values.
func Decode(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidRoster)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidRoster, doc.Type)
	}

	snap := NewSnapshot()
	var decodeErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		a, err := decodeActivity(key.String(), value)
		if err != nil {
			decodeErr = err
			return false
		}
		snap.put(a)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return snap, nil
}

func decodeActivity(name string, value gjson.Result) (Activity, error) {
	if !value.IsObject() {
		return Activity{}, fmt.Errorf("%w: activity %q is not an object", ErrInvalidRoster, name)
	}

	a := Activity{
		Name:            name,
		Description:     value.Get("description").String(),
		Schedule:        value.Get("schedule").String(),
		MaxParticipants: int(value.Get("max_participants").Int()),
		Participants:    []string{},
	}

	participants := value.Get("participants")
	if participants.Exists() && participants.Type != gjson.Null {
		if !participants.IsArray() {
			return Activity{}, fmt.Errorf("%w: participants of %q is not a list", ErrInvalidRoster, name)
		}
		for _, p := range participants.Array() {
			a.Participants = append(a.Participants, p.String())
		}
	}
	return a, nil
}
