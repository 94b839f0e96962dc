// Package repo implements the in-memory persistence layer for users.
//
// The store is the exclusive owner of the user collection. Every operation
// copies on the way in and out, so callers can never mutate internal storage
// through returned values. All read-modify-write sequences (id assignment +
// append, find + merge, find + delete) run under one mutex: the backend
// serves requests from concurrent goroutines, so lost updates and duplicate
// ids must be impossible by construction.
package repo

import (
	"sync"
	"time"

	"github.com/tbourn/go-user-backend/internal/domain"
)

// UserStore is a mutex-guarded, in-process collection of users.
// The zero value is not usable; construct with NewUserStore.
type UserStore struct {
	mu    sync.Mutex
	users []domain.User
}

// NewUserStore returns an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make([]domain.User, 0)}
}

// Get returns a copy of the user with the given id, or ok=false when absent.
// Absence is a normal result here, not an error; the transport layer decides
// whether it becomes a 404.
func (s *UserStore) Get(id int) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// List returns a snapshot copy of all users. Mutating the returned slice has
// no effect on the store.
func (s *UserStore) List() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Insert appends a new user with the next available id (max existing id + 1,
// or 1 when the store is empty) and a server-assigned CreatedAt. Id
// assignment and append happen under the same lock acquisition.
func (s *UserStore) Insert(name, email string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := domain.User{
		ID:        s.nextIDLocked(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, u)
	return u
}

// Update merges the non-nil fields into the stored user and returns the
// updated copy. ok=false signals an unknown id; Email and CreatedAt are left
// unchanged when their inputs are nil.
func (s *UserStore) Update(id int, name, email *string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if name != nil {
			s.users[i].Name = *name
		}
		if email != nil {
			s.users[i].Email = *email
		}
		return s.users[i], true
	}
	return domain.User{}, false
}

// Delete removes the user with the given id and reports whether it existed.
func (s *UserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true
		}
	}
	return false
}

// Seed inserts demo users, assigning ids the same way Insert does. Intended
// for startup fixtures only.
func (s *UserStore) Seed(users ...domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		u.ID = s.nextIDLocked()
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		s.users = append(s.users, u)
	}
}

// nextIDLocked computes max existing id + 1. Callers must hold s.mu.
func (s *UserStore) nextIDLocked() int {
	max := 0
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
