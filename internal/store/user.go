package store

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

type userEntry struct {
	seq  int
	user model.User
}

// UserStore is the in-memory user directory keyed by user ID.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]userEntry
	seq   int
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]userEntry)}
}

// CreateUser inserts a user. The caller assigns the ID.
func (s *UserStore) CreateUser(u model.User) model.User {
	s.mu.Lock()
	s.seq++
	s.users[u.ID] = userEntry{seq: s.seq, user: u.Clone()}
	s.mu.Unlock()
	slog.Info("created user", "id", u.ID, "email", u.Email, "role", u.Role)
	return u.Clone()
}

// GetUserByID returns a user by ID.
func (s *UserStore) GetUserByID(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.users[id]
	if !ok {
		return model.User{}, false
	}
	return e.user.Clone(), true
}

// GetUserByEmail returns a user by email, compared case-insensitively.
// When several users share an email the earliest created one wins.
func (s *UserStore) GetUserByEmail(email string) (model.User, bool) {
	email = strings.TrimSpace(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		best  userEntry
		found bool
	)
	for _, e := range s.users {
		if !strings.EqualFold(e.user.Email, email) {
			continue
		}
		if !found || e.seq < best.seq {
			best, found = e, true
		}
	}
	if !found {
		return model.User{}, false
	}
	return best.user.Clone(), true
}

// ListUsers returns all users in insertion order.
func (s *UserStore) ListUsers() []model.User {
	s.mu.RLock()
	entries := make([]userEntry, 0, len(s.users))
	for _, e := range s.users {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	users := make([]model.User, len(entries))
	for i, e := range entries {
		users[i] = e.user.Clone()
	}
	return users
}

// UpdateUser applies fn to a copy of the user and stores the result.
// The ID cannot be changed.
func (s *UserStore) UpdateUser(id string, fn func(u *model.User) error) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	working := e.user.Clone()
	if err := fn(&working); err != nil {
		return model.User{}, err
	}
	working.ID = id
	e.user = working
	s.users[id] = e
	return working.Clone(), nil
}

// DeleteUser removes a user.
func (s *UserStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	slog.Info("deleted user", "id", id)
	return nil
}

// UserCount returns the total number of users.
func (s *UserStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
