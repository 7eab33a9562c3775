// Package store holds the in-memory repositories: users, assessments, the
// question bank and static telemetry. State does not survive a restart.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

type assessmentEntry struct {
	mu sync.Mutex
	a  model.Assessment
}

// AssessmentStore is a keyed collection of assessment attempts.
// Mutations of a single assessment are serialized by a per-entry mutex;
// different assessments never contend.
type AssessmentStore struct {
	mu      sync.RWMutex
	entries map[string]*assessmentEntry
}

func NewAssessmentStore() *AssessmentStore {
	return &AssessmentStore{entries: make(map[string]*assessmentEntry)}
}

// Create stores a new assessment. An existing ID is overwritten.
func (s *AssessmentStore) Create(a model.Assessment) model.Assessment {
	e := &assessmentEntry{a: a.Clone()}
	s.mu.Lock()
	s.entries[a.ID] = e
	s.mu.Unlock()
	return a.Clone()
}

// Get returns a copy of the assessment with the given ID.
func (s *AssessmentStore) Get(id string) (model.Assessment, bool) {
	e := s.entry(id)
	if e == nil {
		return model.Assessment{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.a.Clone(), true
}

// Update applies fn to a working copy of the assessment while holding its
// lock. The copy replaces the stored value only when fn returns nil, so a
// failed update leaves the assessment untouched.
func (s *AssessmentStore) Update(id string, fn func(a *model.Assessment) error) (model.Assessment, error) {
	e := s.entry(id)
	if e == nil {
		return model.Assessment{}, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.a.Clone()
	if err := fn(&working); err != nil {
		return model.Assessment{}, err
	}
	working.ID = e.a.ID
	e.a = working
	return working.Clone(), nil
}

// ListByUser returns copies of every assessment owned by userID, oldest first.
func (s *AssessmentStore) ListByUser(userID string) []model.Assessment {
	s.mu.RLock()
	entries := make([]*assessmentEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var out []model.Assessment
	for _, e := range entries {
		e.mu.Lock()
		if e.a.UserID == userID {
			out = append(out, e.a.Clone())
		}
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// Count returns the number of stored assessments.
func (s *AssessmentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *AssessmentStore) entry(id string) *assessmentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}
