package server

import (
	"context"
	"sort"
	"sync"

	"github.com/rosterhq/roster/internal/api"
)

// MemoryStore is an in-memory Store keyed by auto-incrementing id. Records
// live for the life of the process; this is an educational backend, not a
// durable one.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]api.User
	nextID int64
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store with ids starting at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]api.User),
		nextID: 1,
	}
}

// ListUsers returns every record ordered by id. Ids are assigned in
// creation order, so this is also insertion order.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]api.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetUser returns the record with the given id.
func (s *MemoryStore) GetUser(ctx context.Context, id int64) (api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return api.User{}, ErrNotFound
	}
	return u, nil
}

// CreateUser assigns the next id and stores the record.
func (s *MemoryStore) CreateUser(ctx context.Context, draft api.Draft) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := api.User{ID: s.nextID, Name: draft.Name, Email: draft.Email}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

// UpdateUser replaces the editable fields of an existing record, keeping
// its id.
func (s *MemoryStore) UpdateUser(ctx context.Context, id int64, draft api.Draft) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return api.User{}, ErrNotFound
	}
	u := api.User{ID: id, Name: draft.Name, Email: draft.Email}
	s.users[id] = u
	return u, nil
}

// DeleteUser removes the record with the given id.
func (s *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
