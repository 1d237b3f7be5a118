// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apitest provides an in-memory stand-in for the activities service.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Activity is one entry of the fake roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Server is a fake activities service backed by httptest.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	activities []*Activity
	counts     map[string]int

	// ListHook, when set, replaces the GET /activities handler.
	ListHook http.HandlerFunc
	// MutateHook, when set, replaces both POST handlers.
	MutateHook http.HandlerFunc
}

// NewServer starts a fake service seeded with activities. The caller must
// Close it.
func NewServer(activities ...Activity) *Server {
	s := &Server{counts: make(map[string]int)}
	for i := range activities {
		a := activities[i]
		a.Participants = append([]string(nil), a.Participants...)
		s.activities = append(s.activities, &a)
	}

	r := chi.NewRouter()
	r.Get("/activities", s.count("list", s.handleList))
	r.Post("/activities/{name}/signup", s.count("signup", s.handleSignup))
	r.Post("/activities/{name}/unregister", s.count("unregister", s.handleUnregister))

	s.Server = httptest.NewServer(r)
	return s
}

// Default returns a server seeded with the sample school roster.
func Default() *Server {
	return NewServer(
		Activity{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		Activity{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		Activity{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	)
}

// Count returns how many requests hit an endpoint: "list", "signup" or
// "unregister".
func (s *Server) Count(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[endpoint]
}

// Participants returns a copy of an activity's participants.
func (s *Server) Participants(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.find(name); a != nil {
		return append([]string(nil), a.Participants...)
	}
	return nil
}

// SetActivities replaces the roster.
func (s *Server) SetActivities(activities ...Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
	for i := range activities {
		a := activities[i]
		s.activities = append(s.activities, &a)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) count(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.counts[endpoint]++
		s.mu.Unlock()
		next(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.ListHook != nil {
		s.ListHook(w, r)
		return
	}

	s.mu.Lock()
	body := []byte{'{'}
	for i, a := range s.activities {
		if i > 0 {
			body = append(body, ',')
		}
		key, _ := json.Marshal(a.Name)
		val, _ := json.Marshal(map[string]any{
			"description":      a.Description,
			"schedule":         a.Schedule,
			"max_participants": a.MaxParticipants,
			"participants":     append([]string{}, a.Participants...),
		})
		body = append(body, key...)
		body = append(body, ':')
		body = append(body, val...)
	}
	body = append(body, '}')
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if s.MutateHook != nil {
		s.MutateHook(w, r)
		return
	}

	name := activityParam(r)
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(name)
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	for _, p := range a.Participants {
		if p == email {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Already signed up"})
			return
		}
	}
	a.Participants = append(a.Participants, email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed up " + email + " for " + name})
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	if s.MutateHook != nil {
		s.MutateHook(w, r)
		return
	}

	name := activityParam(r)
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(name)
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Unregistered " + email + " from " + name})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Student not registered for this activity"})
}

func (s *Server) find(name string) *Activity {
	for _, a := range s.activities {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// activityParam returns the decoded {name} segment. chi matches on the raw
// path when the request carries escapes such as %2F.
func activityParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
