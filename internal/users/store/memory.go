// Package store persists staff accounts in memory or in Postgres.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"backoffice/internal/users/models"
	"backoffice/pkg/platform/sentinel"
)

type InMemory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.UserAccount
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[uuid.UUID]models.UserAccount)}
}

// List returns every account, oldest first.
func (s *InMemory) List(_ context.Context) ([]*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.UserAccount, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.byEmail(email); ok {
		return &u, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, u *models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("update user %s: %w", u.ID, sentinel.ErrNotFound)
	}
	s.users[u.ID] = *u
	return nil
}

// Upsert inserts u or, when the email is taken, overwrites name, role,
// active flag and password hash of the existing account. It returns the
// stored account.
func (s *InMemory) Upsert(_ context.Context, u *models.UserAccount) (*models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byEmail(u.Email); ok {
		existing.Name = u.Name
		existing.Role = u.Role
		existing.Active = u.Active
		existing.PasswordHash = u.PasswordHash
		s.users[existing.ID] = existing
		return &existing, nil
	}
	s.users[u.ID] = *u
	stored := *u
	return &stored, nil
}

func (s *InMemory) byEmail(email string) (models.UserAccount, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.UserAccount{}, false
}
